package retry

import "context"

// policyKey is the key for the policy in the context.
type policyKey struct{}

// ToContext returns a new context carrying a retry policy that overrides
// the client's configured policy for requests issued with this context.
func ToContext(ctx context.Context, policy Policy) context.Context {
	return context.WithValue(ctx, policyKey{}, policy)
}

// FromContext gets the retry policy from the context.
// The second return value reports whether one was set.
func FromContext(ctx context.Context) (Policy, bool) {
	policy, ok := ctx.Value(policyKey{}).(Policy)
	return policy, ok
}
