package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("service")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("nope")))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}

func TestFromStoreMapsStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", status.Error(codes.NotFound, "missing"), KindNotFound},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad"), KindInvalidArgument},
		{"unauthenticated", status.Error(codes.Unauthenticated, "who"), KindUnauthenticated},
		{"permission denied", status.Error(codes.PermissionDenied, "no"), KindUnauthorized},
		{"unavailable", status.Error(codes.Unavailable, "down"), KindPersistence},
		{"plain error", errors.New("boom"), KindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(FromStore(tt.err, "service")))
		})
	}
}

func TestFromStoreNil(t *testing.T) {
	assert.NoError(t, FromStore(nil, "service"))
}

func TestFromStorePassesThroughAppErrors(t *testing.T) {
	orig := Unauthorized("not yours")
	assert.Same(t, orig, FromStore(orig, "service").(*Error))
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Persistence("outer", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "outer")
	assert.Contains(t, err.Error(), "inner")
}
