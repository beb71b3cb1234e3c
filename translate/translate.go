// Package translate renders the user visible messages of bitvec in the
// locale of the running process.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	lock    sync.RWMutex
	current language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("bitvec: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	current = message.MatchLanguage(locales...)
	printer = message.NewPrinter(current)
}

// SetLanguage pins the message printer to a BCP 47 language tag,
// such as "en-US". Returns the previous language tag.
func SetLanguage(tag string) (previous string, err error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return
	}

	lock.Lock()
	defer lock.Unlock()

	previous = current.String()
	current = lang
	printer = message.NewPrinter(lang)

	return
}

// Language returns the tag of the active printer.
func Language() string {
	lock.RLock()
	defer lock.RUnlock()

	return current.String()
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	lock.RLock()
	defer lock.RUnlock()

	return printer.Sprintf(key, args...)
}
