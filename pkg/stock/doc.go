// Package stock implements the restock alert engine: a Subject that tracks the
// availability count of one resource and notifies registered subscribers when
// the count moves from zero to a positive value.
//
// # Delivery rule
//
// A notification batch fires if and only if the previous count was exactly 0
// and the new count is greater than 0. Restocking an item that is already in
// stock, running out of stock, or setting 0 twice never notifies. Running out
// re-arms the trigger for the next restock.
//
//	subject := stock.NewSubject("iphone-15")
//	subject.Register(alerts.NewEmail("a@x.com", mailer))
//	subject.Register(alerts.NewSMS("555-0100", sms))
//
//	_ = subject.SetCount(ctx, 20) // both subscribers receive one alert
//	_ = subject.SetCount(ctx, 25) // already in stock, nothing sent
//	_ = subject.SetCount(ctx, 0)  // out of stock, re-armed
//	_ = subject.SetCount(ctx, 3)  // second alert
//
// # Subscribers
//
// Anything implementing Subscriber can be registered. Registration order is
// delivery order. The same subscriber registered twice receives two alerts per
// batch unless the subject was built WithDeduplication. Unregister removes the
// first equal entry and ignores subscribers that are not registered; subscriber
// values that are not comparable (for example SubscriberFunc) can be registered
// but never unregistered.
//
// # Failures
//
// Each delivery is isolated: an error or panic from one subscriber is logged and
// reported to the DeliveryObserver, and the rest of the batch is still
// delivered. SetCount only fails for negative counts (ErrInvalidCount).
//
// # Concurrency
//
// All methods are safe for concurrent use. Deliveries run outside the subject's
// lock against a snapshot of the subscriber list, and batches reach subscribers
// in the order their transitions happened. By default delivery runs on the
// goroutine that called SetCount; WithAsyncDelivery hands batches to a single
// background worker so SetCount returns without waiting for sinks. Call Close
// to drain that worker.
//
// In synchronous mode a subscriber must not trigger another restock on the
// same subject from inside Receive: the nested delivery waits for the one
// that is running and never proceeds.
package stock
