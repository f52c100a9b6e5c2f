// pkg/object/object_storage.go

package object

import (
	"fmt"
	"sort"
	"strings"
)

// UserAgent is sent by the drivers that speak HTTP.
var UserAgent = "AveView"

type Creator func(bucket, accessKey, secretKey string) (Backend, error)

var storages = make(map[string]Creator)

// Register makes a driver available to CreateStorage.
func Register(name string, register Creator) {
	storages[name] = register
}

// CreateStorage creates the backend named name (file, sftp, redis, http, s3).
func CreateStorage(name, bucket, accessKey, secretKey string) (Backend, error) {
	if fn, ok := storages[strings.ToLower(name)]; ok {
		return fn(bucket, accessKey, secretKey)
	}
	return nil, fmt.Errorf("invalid storage: %s, supported: %s", name, strings.Join(Storages(), ", "))
}

// Storages lists the registered driver names.
func Storages() []string {
	names := make([]string, 0, len(storages))
	for name := range storages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
