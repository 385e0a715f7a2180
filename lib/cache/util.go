package cache

import (
	"fmt"

	"github.com/ValentinKolb/fbstore/lib/serializer"
	"github.com/ValentinKolb/fbstore/rpc/common"
)

// FromConfig creates the local cache described by the store configuration.
func FromConfig(config common.StoreConfig) (ILocalCache, error) {
	s, err := serializer.ByName(config.Serializer)
	if err != nil {
		return nil, err
	}

	var backend IBackend
	switch config.LocalBackend {
	case "file", "":
		backend, err = NewFileBackend(config.DataDir)
		if err != nil {
			return nil, err
		}
	case "memory":
		backend = NewMemoryBackend()
	case "redis":
		backend = NewRedisBackend(config.RedisAddr, config.RedisDB, "fbstore:")
	default:
		return nil, fmt.Errorf("invalid local backend %s", config.LocalBackend)
	}

	Logger.Debugf("Using %s backend with %s encoding", backend.Name(), s.Name())
	return NewLocalCache(backend, s), nil
}
