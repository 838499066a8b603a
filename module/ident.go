package module

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/px/value"
)

func uuidModule() map[string]any {
	return map[string]any{
		"new": value.Func(func(args ...any) (any, error) {
			if err := arity("uuid.new", args, 0, 0); err != nil {
				return nil, err
			}

			return uuid.NewString(), nil
		}),
		"v7": value.Func(func(args ...any) (any, error) {
			if err := arity("uuid.v7", args, 0, 0); err != nil {
				return nil, err
			}

			id, err := uuid.NewV7()
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return id.String(), nil
		}),
		"sha1": value.Func(func(args ...any) (any, error) {
			s, err := textArgs("uuid.sha1", args, 2)
			if err != nil {
				return nil, err
			}

			space, err := uuid.Parse(s[0])
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return uuid.NewSHA1(space, []byte(s[1])).String(), nil
		}),
		"parse": unaryText("uuid.parse", func(s string) (any, error) {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return id.String(), nil
		}),
		"valid": unaryText("uuid.valid", func(s string) (any, error) {
			return uuid.Validate(s) == nil, nil
		}),
		"version": unaryText("uuid.version", func(s string) (any, error) {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, value.ErrConvert.Wrap(err)
			}

			return int(id.Version()), nil
		}),
		"dns": uuid.NameSpaceDNS.String(),
		"url": uuid.NameSpaceURL.String(),
	}
}

func ksuidModule() map[string]any {
	parse := func(s string) (ksuid.KSUID, error) {
		id, err := ksuid.Parse(s)
		if err != nil {
			return ksuid.Nil, value.ErrConvert.Wrap(err)
		}

		return id, nil
	}

	return map[string]any{
		"new": value.Func(func(args ...any) (any, error) {
			if err := arity("ksuid.new", args, 0, 0); err != nil {
				return nil, err
			}

			return ksuid.New().String(), nil
		}),
		"time": unaryText("ksuid.time", func(s string) (any, error) {
			id, err := parse(s)
			if err != nil {
				return nil, err
			}

			return int(id.Time().Unix()), nil
		}),
		"payload": unaryText("ksuid.payload", func(s string) (any, error) {
			id, err := parse(s)
			if err != nil {
				return nil, err
			}

			return hex.EncodeToString(id.Payload()), nil
		}),
		"valid": unaryText("ksuid.valid", func(s string) (any, error) {
			_, err := ksuid.Parse(s)

			return err == nil, nil
		}),
	}
}

func xxh3Module() map[string]any {
	return map[string]any{
		"hex": unaryText("xxh3.hex", func(s string) (any, error) {
			return strconv.FormatUint(xxh3.HashString(s), 16), nil
		}),
		"sum64": unaryText("xxh3.sum64", func(s string) (any, error) {
			return xxh3.HashString(s), nil
		}),
		"sum128": unaryText("xxh3.sum128", func(s string) (any, error) {
			b := xxh3.HashString128(s).Bytes()

			return hex.EncodeToString(b[:]), nil
		}),
	}
}

func sha256Module() map[string]any {
	return map[string]any{
		"hex": unaryText("sha256.hex", func(s string) (any, error) {
			sum := sha256.Sum256([]byte(s))

			return hex.EncodeToString(sum[:]), nil
		}),
	}
}
