// Package types
package types

// CallPayload describes a remote entry-point invocation. It is handed to a wallet
// for signing and submission, this backend never submits it.
type CallPayload struct {
	Function          string   `json:"function"`
	TypeArguments     []string `json:"typeArguments"`
	FunctionArguments []string `json:"functionArguments"`
}

// ViewRequest is the body of a node view call.
type ViewRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []string `json:"arguments"`
}
