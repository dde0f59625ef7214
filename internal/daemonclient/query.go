package daemonclient

import "strings"

// Arg is one key=value pair of a query. A pair with an empty value renders
// as the bare key.
type Arg struct {
	Key   string
	Value string
}

// buildQuery renders "command&key1=value1&key2" per the daemon wire
// grammar.
func buildQuery(command string, args []Arg) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, command)
	for _, arg := range args {
		if arg.Key == "" {
			continue
		}
		if arg.Value == "" {
			parts = append(parts, arg.Key)
			continue
		}
		parts = append(parts, arg.Key+"="+arg.Value)
	}
	return strings.Join(parts, "&")
}
