// pkg/object/redis.go

package object

import (
	"context"
	"net"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// redisStore serves files stored as string values, one key per file.
type redisStore struct {
	uri string
	rdb redis.UniversalClient
}

func (r *redisStore) String() string {
	return r.uri
}

func (r *redisStore) Close() error {
	return r.rdb.Close()
}

func (r *redisStore) Info(ctx context.Context, key string) (FileInfo, error) {
	n, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return FileInfo{}, errors.Wrapf(err, "exists %s", key)
	}
	if n == 0 {
		return FileInfo{}, errors.Wrapf(ErrNotFound, "%s", key)
	}
	size, err := r.rdb.StrLen(ctx, key).Result()
	if err != nil {
		return FileInfo{}, errors.Wrapf(err, "strlen %s", key)
	}
	return newFileInfo(size), nil
}

func (r *redisStore) ReadRange(ctx context.Context, key string, chunkSize int, offset int64) ([]byte, error) {
	data, err := r.rdb.GetRange(ctx, key, offset, offset+int64(chunkSize)-1).Bytes()
	if err != nil {
		return nil, errors.Wrapf(err, "getrange %s at %d", key, offset)
	}
	return data, nil
}

// newRedis accepts a redis URL. A comma separated address is read as
// master-name,sentinel1,sentinel2... and connects through sentinels.
func newRedis(endpoint, user, passwd string) (Backend, error) {
	uri := endpoint
	if !strings.Contains(uri, "://") {
		uri = "redis://" + uri
	}
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", uri)
	}
	if user != "" {
		opt.Username = user
	}
	if passwd != "" {
		opt.Password = passwd
	}
	if opt.Password == "" && os.Getenv("REDIS_PASSWORD") != "" {
		opt.Password = os.Getenv("REDIS_PASSWORD")
	}

	var rdb redis.UniversalClient
	if strings.Contains(opt.Addr, ",") {
		var fopt redis.FailoverOptions
		ps := strings.Split(opt.Addr, ",")
		fopt.MasterName = ps[0]
		fopt.SentinelAddrs = ps[1:]

		defaultSentinelPort := "26379"
		for i, saddr := range fopt.SentinelAddrs {
			h, p, err := net.SplitHostPort(saddr)
			if err != nil {
				fopt.SentinelAddrs[i] = net.JoinHostPort(saddr, defaultSentinelPort)
			} else if p == "" {
				fopt.SentinelAddrs[i] = net.JoinHostPort(h, defaultSentinelPort)
			}
		}
		fopt.Username = opt.Username
		fopt.Password = opt.Password
		fopt.SentinelPassword = os.Getenv("SENTINEL_PASSWORD")
		fopt.DB = opt.DB
		fopt.TLSConfig = opt.TLSConfig
		fopt.MaxRetries = 3
		fopt.MinRetryBackoff = time.Millisecond * 100
		fopt.MaxRetryBackoff = time.Second * 10
		fopt.ReadTimeout = time.Second * 30
		fopt.WriteTimeout = time.Second * 5
		rdb = redis.NewFailoverClient(&fopt)
	} else {
		opt.MaxRetries = 3
		opt.MinRetryBackoff = time.Millisecond * 100
		opt.MaxRetryBackoff = time.Second * 10
		opt.ReadTimeout = time.Second * 30
		opt.WriteTimeout = time.Second * 5
		rdb = redis.NewClient(opt)
	}
	return &redisStore{uri: "redis://" + opt.Addr, rdb: rdb}, nil
}

func init() {
	Register("redis", newRedis)
}
