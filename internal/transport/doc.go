// Package transport performs single streaming HTTP downloads into
// bucket objects.
//
// Outcomes are discriminated through the returned error:
//
//	n, err := client.Fetch(ctx, url, bucket, key, reporter)
//	switch {
//	case errors.Is(err, transport.ErrNotFound):
//	    // remote resource does not exist; destination untouched
//	case err != nil:
//	    // transfer failed; destination not committed
//	default:
//	    // full body streamed to key
//	}
//
// Every request carries the configured client timeout. There is no
// retry: a failed transfer is reported once and the caller decides
// what to do with it.
package transport
