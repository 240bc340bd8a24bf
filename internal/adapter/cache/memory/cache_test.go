package memory

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"taskmanager/internal/core/port"
)

func TestCache_SetGet(t *testing.T) {
	RegisterTestingT(t)

	c := New(time.Minute, time.Minute)
	ctx := context.Background()

	value := []byte(`{"id":1}`)
	Expect(c.Set(ctx, "identity:1", value, time.Minute)).To(Succeed())

	value[0] = 'x'

	got, err := c.Get(ctx, "identity:1")
	Expect(err).To(BeNil())
	Expect(string(got)).To(Equal(`{"id":1}`))
}

func TestCache_Miss(t *testing.T) {
	RegisterTestingT(t)

	_, err := New(time.Minute, time.Minute).Get(context.Background(), "identity:404")

	Expect(err).To(MatchError(port.ErrCacheMiss))
}

func TestCache_Expiry(t *testing.T) {
	RegisterTestingT(t)

	c := New(time.Minute, time.Minute)
	ctx := context.Background()

	Expect(c.Set(ctx, "identity:1", []byte("a"), 10*time.Millisecond)).To(Succeed())

	Eventually(func() error {
		_, err := c.Get(ctx, "identity:1")
		return err
	}).WithTimeout(time.Second).Should(MatchError(port.ErrCacheMiss))
}

func TestCache_Delete(t *testing.T) {
	RegisterTestingT(t)

	c := New(time.Minute, time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "identity:1", []byte("a"), time.Minute)
	_ = c.Set(ctx, "identity:2", []byte("b"), time.Minute)

	Expect(c.Delete(ctx, "identity:1")).To(Succeed())

	_, err := c.Get(ctx, "identity:1")
	Expect(err).To(MatchError(port.ErrCacheMiss))

	_, err = c.Get(ctx, "identity:2")
	Expect(err).To(BeNil())
}
