// Package tap passes values through unchanged while optionally logging them.
//
// Tap is the identity function with a side effect. The value comes back with
// its exact static type, so it can be dropped into any expression:
//
//	n := tap.Tap(len(items))          // prints "arg: 3" and "type: int"
//	names = tap.TapSlice(names)       // also prints "Length: 3"
//	user := tap.Tap(load(), tap.WithLog(false))
//
// Where the output goes is decided by sinks. With no sink configured the
// output is written to stdout. A Tapper bundles sinks and options for reuse:
//
//	tp := tap.New(
//	    tap.WithSink(sinks.NewZapSink(zapLogger)),
//	    tap.WithProperty("component", "billing"),
//	)
//	total := tap.Pass(tp, computeTotal())
//
// Logging is best effort. A sink that fails to write or panics never changes
// the returned value; the failure is reported through the selflog package.
package tap
