package jsonrpc

// Version is the protocol version marker carried by every built request.
const Version = "2.0"

/*
Request represents the JSON-RPC request object. Requests are immutable
values: the builder creates them, the transport consumes them once, and
nothing mutates them in between.
*/
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      ID     `json:"id"`
}
