// Package task manages background job queuing, processing, and lifecycle.
// It provides mechanisms for asynchronous execution of long-running
// generation sessions, ensuring they don't block HTTP request handling and
// can recover from application restarts. Sessions are independent, so jobs
// run concurrently across workers while each session stays strictly
// sequential internally.
package task
