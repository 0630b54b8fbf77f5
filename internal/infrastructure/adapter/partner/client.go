package partner

import "context"

// JSONPoster is satisfied by *httpclient.Client.
type JSONPoster interface {
	PostJSON(ctx context.Context, op, url string, body, out any) error
}

// SOAPCaller is satisfied by *soapclient.Client.
type SOAPCaller interface {
	Call(ctx context.Context, url, action string, payload, out any) error
}
