// Package api is the single point through which the storefront talks to the
// REST backend.
//
// # Overview
//
// A Client attaches the stored access token to every request as
// "Authorization: Bearer <token>". When the backend answers 401 the client
// exchanges the refresh token at /auth/token/refresh/, stores the new access
// token and re-sends the original request once. If that is not possible
// (no refresh token, refresh rejected, or the retried request is rejected
// again) the session is terminated: both tokens are cleared and the
// OnSessionExpired callback fires.
//
// # Results
//
// The verb helpers Get, Post, Put, Patch and Delete never return a Go error.
// They return a Result[T] in which exactly one of Data and Error is set:
//
//	res := api.Get[models.Order](ctx, c, "/orders/1/")
//	if !res.Success {
//	    fmt.Println(res.Error.Message)
//	    return
//	}
//	fmt.Println(res.Data.Status)
//
// # Concurrency
//
// Client is safe for concurrent use. Concurrent 401 responses share one
// in-flight refresh call.
package api
