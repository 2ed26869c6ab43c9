// Package api handles incoming HTTP requests for the practice flow: the
// input form, the practice screens, the results table and the speech
// endpoint. It translates form fields and query parameters into service
// calls, maps errors onto status codes and hands view models to the
// renderer.
package api
