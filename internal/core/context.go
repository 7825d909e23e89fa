package core

import "context"

type contextKey string

const (
	ctxKeyIPAddress contextKey = "journal_ip"
	ctxKeyUserAgent contextKey = "journal_ua"
)

// ContextWithClient attaches the reviewer's address and user agent so that
// journal entries written during the request can record them.
func ContextWithClient(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyIPAddress, ip)
	return context.WithValue(ctx, ctxKeyUserAgent, userAgent)
}

func clientFromContext(ctx context.Context) (ip, userAgent string) {
	ip, _ = ctx.Value(ctxKeyIPAddress).(string)
	userAgent, _ = ctx.Value(ctxKeyUserAgent).(string)
	return ip, userAgent
}
