// Package activity supplies share-sheet items from closures.
//
// A share sheet asks each ItemProvider for a placeholder while it
// is being built and for the actual item once the user picks an
// activity, so items can be tailored to the chosen activity.
package activity

import "net/url"

type (
	// Type identifies an activity such as posting or mailing.
	// The empty Type means no activity has been chosen.
	Type string

	// Controller is the opaque share-sheet controller of the host.
	Controller any

	// ItemFunc returns the item to share for activityType.
	// Returning false shares nothing for that activity.
	ItemFunc[T any] func(controller Controller, activityType Type) (T, bool)

	// SubjectFunc returns the subject line for activityType.
	SubjectFunc func(controller Controller, activityType Type) string

	// ItemProvider serves share-sheet items of type T from closures.
	ItemProvider[T any] struct {
		placeholder T
		item        ItemFunc[T]
		subject     SubjectFunc
	}
)

const (
	PostToFacebook   Type = "postToFacebook"
	PostToTwitter    Type = "postToTwitter"
	Message          Type = "message"
	Mail             Type = "mail"
	Print            Type = "print"
	CopyToPasteboard Type = "copyToPasteboard"
	AirDrop          Type = "airDrop"
)

// defaultURL is copied into the placeholder of every URL provider.
var defaultURL = url.URL{Scheme: "https", Host: "www.example.com", Path: "/"}

// NewItemProvider creates an ItemProvider showing placeholder
// until an activity is chosen.  subject may be nil.
func NewItemProvider[T any](placeholder T, item ItemFunc[T], subject SubjectFunc) *ItemProvider[T] {
	if item == nil {
		panic("item cannot be nil")
	}
	return &ItemProvider[T]{placeholder, item, subject}
}

// NewStringProvider creates a text ItemProvider with an empty placeholder.
func NewStringProvider(item ItemFunc[string], subject SubjectFunc) *ItemProvider[string] {
	return NewItemProvider("", item, subject)
}

// NewURLProvider creates a link ItemProvider with its own
// https://www.example.com/ placeholder.
func NewURLProvider(item ItemFunc[*url.URL], subject SubjectFunc) *ItemProvider[*url.URL] {
	placeholder := defaultURL
	return NewItemProvider(&placeholder, item, subject)
}

func (p *ItemProvider[T]) Placeholder() T {
	return p.placeholder
}

// Item returns the item for activityType.  Without an activity
// the zero T and false are returned.
func (p *ItemProvider[T]) Item(controller Controller, activityType Type) (T, bool) {
	if activityType == "" {
		var zero T
		return zero, false
	}
	return p.item(controller, activityType)
}

// Subject returns the subject for activityType or "" if the
// provider has no subject closure.
func (p *ItemProvider[T]) Subject(controller Controller, activityType Type) string {
	if p.subject == nil {
		return ""
	}
	return p.subject(controller, activityType)
}
