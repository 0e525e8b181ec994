package filter

import (
	"reflect"
	"sync"
)

// DefaultActive is the flag set a fresh engine starts with: synchronization
// primitives are not descended into and formatting helpers are not reported.
const DefaultActive = RecurseTypeBlacklist | ExamineNameBlacklist | RecurseNameBlacklist

// seedDefaults installs the content every collection always carries. Content
// stays in place even while its collection is inactive so re-activating a
// flag restores the original behavior.
func seedDefaults(e *Engine) {
	e.AddType(RecurseTypeBlacklist, reflect.TypeOf(sync.Mutex{}))
	e.AddType(RecurseTypeBlacklist, reflect.TypeOf(sync.RWMutex{}))
	e.AddType(RecurseTypeBlacklist, reflect.TypeOf(sync.WaitGroup{}))
	e.AddType(RecurseTypeBlacklist, reflect.TypeOf(sync.Once{}))

	//formatting accessors restate other members and would double the noise
	for _, accessor := range []string{"String", "GoString", "Error", "Format"} {
		e.AddName(ExamineNameBlacklist, accessor)
		e.AddName(RecurseNameBlacklist, accessor)
	}

	e.SetActive(DefaultActive)
}
