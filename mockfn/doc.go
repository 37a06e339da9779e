// Package mockfn records calls made through a function value.
//
// A Mock wraps any func type. It hands out a function of that type which
// records the arguments of every call and what the call returned, and lets a
// test override the behaviour: a fixed return value, a queue of one-shot
// return values consumed in call order, or a replacement implementation.
//
// SpyOn installs a Mock in place of an existing function variable or struct
// field, calling through to the original until told otherwise, and puts the
// original back on Restore.
//
//	greet := mockfn.Fn[func(args ...any) string]()
//	greet.ReturnValueOnce("Hello").ReturnValueOnce("there!")
//	f := greet.Func()
//	f() // "Hello"
//	f() // "there!"
//	greet.CallCount() // 2
package mockfn
