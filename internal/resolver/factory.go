package resolver

import "strings"

func NewResolver(name string, server string) Resolver {
	n := strings.ToLower(name)
	switch n {
	case "doh":
		{
			return newDoHResolver()
		}
	case "plain":
		{
			return newPlainResolver(server)
		}
	case "null":
		{
			return newNullResolver()
		}
	default:
		{
			return newDoHResolver()
		}
	}
}
