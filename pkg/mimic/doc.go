// Package mimic is a test harness whose console output looks and behaves
// like the built-in Rust test runner (libtest, as used by cargo test).
//
// A program builds a list of tests, parses the libtest-style command line
// and hands both to Run:
//
//	tests := []mimic.Test{
//		mimic.NewTest("check_toph", func() error { return nil }),
//		mimic.NewTest("check_sokka", func() error { return errors.New("Woops") }),
//	}
//	conclusion := mimic.MustRun(mimic.MustParseArgs(), tests)
//	conclusion.Exit()
//
// Output capturing is not performed: tests are expected not to write to
// stdout unless --nocapture was given, and running them as subprocesses
// is the simplest way to guarantee that.
package mimic
