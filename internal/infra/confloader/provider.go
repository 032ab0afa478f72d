package confloader

import "errors"

// errConfMapBytes signals that an in-memory override map has no raw
// byte form; koanf falls back to Read for such providers.
var errConfMapBytes = errors.New("confloader: override map has no byte form")

// confMap adapts explicit Set overrides to koanf's Provider interface
// so they merge through the same load path as files and environment
// variables, keeping the Flag > Env > File > Default priority intact.
type confMap map[string]any

func (m confMap) ReadBytes() ([]byte, error) {
	return nil, errConfMapBytes
}

func (m confMap) Read() (map[string]any, error) {
	return m, nil
}
