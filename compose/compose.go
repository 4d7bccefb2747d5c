// Package compose adds one-shot completion closures to mail and
// message composers.
//
// A completion fires at most once.  The composer is dismissed and
// its closures detached before the completion is called, so later
// finish events from the same composer are ignored.
package compose

import "github.com/miruken-go/lambdakit"

type (
	// MailResult is the outcome of composing a mail.
	MailResult uint8

	// MessageResult is the outcome of composing a message.
	MessageResult uint8

	// Dismisser is a presented controller that can be dismissed.
	// completion may be nil.
	Dismisser interface {
		Dismiss(animated bool, completion func())
	}

	// MailComposer is the mail compose controller of the host framework.
	MailComposer interface {
		Dismisser
		MailDelegate() MailDelegate
		SetMailDelegate(delegate MailDelegate)
	}

	MailDelegate interface {
		MailComposeDidFinish(composer MailComposer, result MailResult, err error)
	}

	// MessageComposer is the message compose controller of the host framework.
	MessageComposer interface {
		Dismisser
		MessageDelegate() MessageDelegate
		SetMessageDelegate(delegate MessageDelegate)
	}

	MessageDelegate interface {
		MessageComposeDidFinish(composer MessageComposer, result MessageResult)
	}

	// MailHandler receives the outcome of a mail composer.
	MailHandler func(composer MailComposer, result MailResult, err error)

	// MessageHandler receives the outcome of a message composer.
	MessageHandler func(composer MessageComposer, result MessageResult)

	// MessageOption customizes OnMessageFinish.
	MessageOption func(*messageCompletion)

	messageCompletion struct {
		handler        MessageHandler
		afterDismissal bool
	}

	mailTrampoline struct {
		lambdakit.Trampoline
	}

	messageTrampoline struct {
		lambdakit.Trampoline
	}
)

const (
	MailCancelled MailResult = iota
	MailSaved
	MailSent
	MailFailed
)

const (
	MessageCancelled MessageResult = iota
	MessageSent
	MessageFailed
)

const didFinish = "didFinish"

var (
	mails = lambdakit.NewTable[MailComposer](lambdakit.DelegateBinding[MailComposer, MailDelegate]{
		Delegate:    MailComposer.MailDelegate,
		SetDelegate: MailComposer.SetMailDelegate,
		Trampoline: func(_ MailComposer, reg *lambdakit.Registry) MailDelegate {
			return &mailTrampoline{lambdakit.NewTrampoline(reg)}
		},
	})

	messages = lambdakit.NewTable[MessageComposer](lambdakit.DelegateBinding[MessageComposer, MessageDelegate]{
		Delegate:    MessageComposer.MessageDelegate,
		SetDelegate: MessageComposer.SetMessageDelegate,
		Trampoline: func(_ MessageComposer, reg *lambdakit.Registry) MessageDelegate {
			return &messageTrampoline{lambdakit.NewTrampoline(reg)}
		},
	})
)

// AfterDismissal defers the message completion until the
// composer has finished dismissing.
func AfterDismissal() MessageOption {
	return func(c *messageCompletion) {
		c.afterDismissal = true
	}
}

// OnMailFinish sets the completion of composer.
func OnMailFinish(composer MailComposer, handler MailHandler) {
	lambdakit.Set(mails, composer, didFinish, handler)
}

func MailFinishOf(composer MailComposer) (MailHandler, bool) {
	return lambdakit.Get[MailComposer, MailHandler](mails, composer, didFinish)
}

func MailMode(composer MailComposer) lambdakit.Mode {
	return mails.Mode(composer)
}

// OnMessageFinish sets the completion of composer.
// By default the completion runs as soon as dismissal begins.
func OnMessageFinish(composer MessageComposer, handler MessageHandler, opts ...MessageOption) {
	completion := messageCompletion{handler: handler}
	for _, opt := range opts {
		opt(&completion)
	}
	if handler == nil {
		messages.Clear(composer)
		return
	}
	lambdakit.Set(messages, composer, didFinish, completion)
}

func MessageFinishOf(composer MessageComposer) (MessageHandler, bool) {
	c, ok := lambdakit.Get[MessageComposer, messageCompletion](messages, composer, didFinish)
	return c.handler, ok
}

func MessageMode(composer MessageComposer) lambdakit.Mode {
	return messages.Mode(composer)
}

func (t *mailTrampoline) MailComposeDidFinish(
	composer MailComposer,
	result   MailResult,
	err      error,
) {
	reg := mails.Take(composer)
	if reg == nil {
		return
	}
	defer reg.Reset()
	composer.Dismiss(true, nil)
	if fn, ok := lambdakit.Lookup[MailHandler](reg, didFinish); ok {
		fn(composer, result, err)
	}
}

func (t *messageTrampoline) MessageComposeDidFinish(
	composer MessageComposer,
	result   MessageResult,
) {
	reg := messages.Take(composer)
	if reg == nil {
		return
	}
	completion, _ := lambdakit.Lookup[messageCompletion](reg, didFinish)
	complete := func() {
		defer reg.Reset()
		if fn := completion.handler; fn != nil {
			fn(composer, result)
		}
	}
	if completion.afterDismissal {
		composer.Dismiss(true, complete)
	} else {
		composer.Dismiss(true, nil)
		complete()
	}
}
