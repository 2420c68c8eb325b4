// Package cli provides argument handling and help text for the phasectl CLI.
package cli

import (
	"fmt"
	"strings"
)

// ModelFlag is the single named flag the retry command recognizes in its
// argument tail. Everything else is forwarded to the agent unexamined.
const ModelFlag = "--model-name"

// SplitRetryTail separates the retry command's argument tail into a model
// override and the pass-through arguments.
//
// The tail follows the mandatory positional phase name. Exactly one flag is
// recognized: --model-name, in either "--model-name VALUE" or
// "--model-name=VALUE" form. It is removed from the tail along with its
// value; if it appears more than once, the last occurrence wins. Every other
// token, named or not, is returned verbatim with its original order
// preserved.
func SplitRetryTail(tail []string) (model string, passthrough []string, err error) {
	passthrough = []string{}
	for i := 0; i < len(tail); i++ {
		tok := tail[i]
		switch {
		case tok == ModelFlag:
			if i+1 >= len(tail) {
				return "", nil, fmt.Errorf("%s requires a value", ModelFlag)
			}
			model = tail[i+1]
			i++
		case strings.HasPrefix(tok, ModelFlag+"="):
			model = strings.TrimPrefix(tok, ModelFlag+"=")
		default:
			passthrough = append(passthrough, tok)
		}
	}
	return model, passthrough, nil
}
