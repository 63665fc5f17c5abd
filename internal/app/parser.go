package app

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONParser is the serializer injected into the manager for structured log
// contents.
func JSONParser(v any) (string, error) {
	return json.MarshalToString(v)
}
