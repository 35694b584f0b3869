// Package json routes all JSON encoding through json-iterator.
package json

import jsoniter "github.com/json-iterator/go"

var (
	// JSON is the jsoniter.API used across the module
	JSON = jsoniter.ConfigCompatibleWithStandardLibrary

	Marshal       = JSON.Marshal
	MarshalIndent = JSON.MarshalIndent
	Unmarshal     = JSON.Unmarshal
)
