// Package truetabs pushes field updates to TrueTabs datasheets.
//
// One call is one PATCH to {base}/datasheets/{id}/records carrying
//
//	{"records":[{"recordId":"rec1","fields":{"Status":"done"}}],"fieldKey":"name"}
//
// with a bearer token. A 2xx answer is returned as raw JSON. Anything else
// is a sink fault wrapping *StatusError, which keeps the literal status code
// and response body. Nothing is retried.
package truetabs
