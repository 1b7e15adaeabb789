package llm

import "context"

// callTag labels a request for the request log.
type callTag struct {
	purpose string
	subject string
}

type tagKey struct{}

func tagFrom(ctx context.Context) callTag {
	t, _ := ctx.Value(tagKey{}).(callTag)
	return t
}

// WithPurpose labels requests made with ctx, e.g. "coaching-note".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	t := tagFrom(ctx)
	t.purpose = purpose
	return context.WithValue(ctx, tagKey{}, t)
}

// WithSubject names what a request is about, e.g. the learning type a
// coaching note is written for. It is logged but not persisted.
func WithSubject(ctx context.Context, subject string) context.Context {
	t := tagFrom(ctx)
	t.subject = subject
	return context.WithValue(ctx, tagKey{}, t)
}

// PurposeFrom returns the purpose label of ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p := tagFrom(ctx).purpose; p != "" {
		return p
	}
	return "unknown"
}

// SubjectFrom returns the subject of ctx, if any.
func SubjectFrom(ctx context.Context) string {
	return tagFrom(ctx).subject
}
