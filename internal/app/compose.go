package app

import (
	"context"
	"fmt"

	"house_explorer/internal/domain"
)

type ComposeState int

const (
	ComposeIdle ComposeState = iota
	ComposeComposing
)

func (s ComposeState) String() string {
	switch s {
	case ComposeIdle:
		return "idle"
	case ComposeComposing:
		return "composing"
	}
	return fmt.Sprintf("ComposeState(%d)", int(s))
}

type Submitter interface {
	Submit(ctx context.Context, listingID string, d domain.ReviewDraft) (domain.Review, error)
}

// Composer is the write-a-review form: idle -> composing -> idle, either by a
// successful submit or a cancel. A submit with an invalid draft keeps the
// form open and changes nothing.
type Composer struct {
	listingID string
	author    domain.ReviewDraft
	draft     domain.ReviewDraft
	state     ComposeState
	submit    Submitter
}

// NewComposer binds the form to a listing. author supplies the identity
// fields (UserID, Username, Avatar) stamped onto every submitted draft.
func NewComposer(listingID string, author domain.ReviewDraft, s Submitter) *Composer {
	return &Composer{listingID: listingID, author: author, submit: s}
}

func (c *Composer) State() ComposeState       { return c.state }
func (c *Composer) Draft() domain.ReviewDraft { return c.draft }

// CanSubmit mirrors the enabled state of the submit button.
func (c *Composer) CanSubmit() bool {
	return c.state == ComposeComposing && ValidateDraft(c.draft) == nil
}

func (c *Composer) Open() error {
	if c.state != ComposeIdle {
		return fmt.Errorf("open from %s: %w", c.state, domain.ErrInvalidTransition)
	}
	c.state = ComposeComposing
	return nil
}

func (c *Composer) Cancel() error {
	if c.state != ComposeComposing {
		return fmt.Errorf("cancel from %s: %w", c.state, domain.ErrInvalidTransition)
	}
	c.reset()
	return nil
}

// Toggle is the "Write a Review" / "Cancel" button.
func (c *Composer) Toggle() {
	if c.state == ComposeIdle {
		c.state = ComposeComposing
		return
	}
	c.reset()
}

func (c *Composer) SetRating(v float64) error {
	if c.state != ComposeComposing {
		return fmt.Errorf("set rating while %s: %w", c.state, domain.ErrInvalidTransition)
	}
	c.draft.Rating = v
	return nil
}

func (c *Composer) SetComment(s string) error {
	if c.state != ComposeComposing {
		return fmt.Errorf("set comment while %s: %w", c.state, domain.ErrInvalidTransition)
	}
	c.draft.Comment = s
	return nil
}

// Submit sends the draft. On any failure the form stays open with the
// draft intact.
func (c *Composer) Submit(ctx context.Context) (domain.Review, error) {
	if c.state != ComposeComposing {
		return domain.Review{}, fmt.Errorf("submit while %s: %w", c.state, domain.ErrInvalidTransition)
	}
	d := c.draft
	d.UserID, d.Username, d.Avatar = c.author.UserID, c.author.Username, c.author.Avatar
	if err := ValidateDraft(d); err != nil {
		return domain.Review{}, err
	}
	rv, err := c.submit.Submit(ctx, c.listingID, d)
	if err != nil {
		return domain.Review{}, err
	}
	c.reset()
	return rv, nil
}

func (c *Composer) reset() {
	c.state = ComposeIdle
	c.draft = domain.ReviewDraft{}
}
