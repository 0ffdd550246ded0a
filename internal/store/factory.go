package store

import "strings"

func NewStore(kind string, path string) (Store, error) {
	k := strings.ToLower(kind)
	switch k {
	case "memory":
		{
			return NewMemStore(), nil
		}
	case "bolt":
		{
			return OpenBolt(path)
		}
	default:
		{
			return OpenBolt(path)
		}
	}
}
