// Package testing provides in-memory collaborators for exercising a
// pager.Adapter without a UI framework.
//
// # Quick Start
//
// Create a tester over a list of page titles and drive it like a user:
//
//	func TestWrap(t *testing.T) {
//	    tester := pagertest.NewPagerTesterWithT(t, []string{"a", "b", "c", "d", "e"}, pagertest.Options{})
//
//	    tester.Swipe(-1)  // swipe back from "a" onto the shadow of "e"
//	    tester.Pump()     // run the deferred snap
//
//	    if got := tester.Container.CurrentItem(); got != 6 {
//	        t.Errorf("current = %d, want 6", got)
//	    }
//	}
//
// # Collaborators
//
// [Host] plays the UI framework's content manager: it records every
// committed transaction and can be recreated to simulate the process being
// torn down. [ListProvider] serves one [Page] per title. [Container] is a
// view pager that keeps an offscreen window of pages around the current
// one and reports its events to a pager.SnapController.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import pagertest "github.com/go-drift/infinitepager/pkg/testing"
package testing
