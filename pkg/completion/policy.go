package completion

import (
	"context"
	"time"
)

// RetryPolicy decides, per failure class, how many attempts a call gets and
// how long to wait between them. Attempt indexes start at 1.
type RetryPolicy struct {
	Attempts map[Class]int
	Delay    func(class Class, attempt int) time.Duration
}

// DefaultRetryPolicy retries overload responses up to 3 attempts with a
// linearly growing delay and allows one extra attempt after a network-level
// failure. Rate limits and other failures are terminal.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: map[Class]int{
			ClassOverloaded:  3,
			ClassNetwork:     2,
			ClassRateLimited: 1,
			ClassFailure:     1,
		},
		Delay: func(class Class, attempt int) time.Duration {
			if class == ClassNetwork {
				return time.Second
			}
			return time.Duration(attempt) * 1500 * time.Millisecond
		},
	}
}

// callWithRetry runs fn under the policy, sleeping between attempts. The
// final error is returned unwrapped so the caller can classify it.
func callWithRetry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (string, error)) (string, error) {
	attempt := 0
	for {
		attempt++
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		class := Classify(err)
		if attempt >= policy.Attempts[class] {
			return "", err
		}

		select {
		case <-time.After(policy.Delay(class, attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}
