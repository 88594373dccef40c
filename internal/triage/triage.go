// Package triage files incoming mail into imbox, feed, paper trail or screener.
package triage

import (
	"regexp"
	"strings"

	"switchyard.app/platform/internal/model"
)

type Input struct {
	FromEmail string
	Subject   string
	// ListUnsubscribe is true when the message carries a List-Unsubscribe header.
	ListUnsubscribe bool
	IsContact       bool
	Decision        *model.SenderDecisionKind
}

type Verdict struct {
	View   model.EmailView
	Drop   bool
	Reason string
}

var (
	bulkSender    = regexp.MustCompile(`^(no[-_.]?reply|do[-_.]?not[-_.]?reply|notifications?|newsletters?|news|updates|marketing|mailer|bounces?|info)([-_.+].*)?@`)
	transactional = regexp.MustCompile(`(?i)\b(receipt|invoice|order|shipped|shipping|payment|confirmation|statement)s?\b`)
)

// Classify applies, in order: blocked senders are dropped, an explicit sender
// decision wins, unknown first-time senders are screened, bulk mail goes to
// the feed, transactional mail to the paper trail, and the rest to the imbox.
func Classify(in Input) Verdict {
	if in.Decision != nil {
		switch *in.Decision {
		case model.SenderDecisionBlocked:
			return Verdict{Drop: true, Reason: "blocked sender"}
		case model.SenderDecisionImbox:
			return Verdict{View: model.EmailViewImbox, Reason: "sender decision"}
		case model.SenderDecisionFeed:
			return Verdict{View: model.EmailViewFeed, Reason: "sender decision"}
		case model.SenderDecisionPaperTrail:
			return Verdict{View: model.EmailViewPaperTrail, Reason: "sender decision"}
		}
	}

	if !in.IsContact {
		return Verdict{View: model.EmailViewScreener, Reason: "first-time sender"}
	}
	if in.ListUnsubscribe || IsBulkSender(in.FromEmail) {
		return Verdict{View: model.EmailViewFeed, Reason: "bulk mail"}
	}
	if transactional.MatchString(in.Subject) {
		return Verdict{View: model.EmailViewPaperTrail, Reason: "transactional"}
	}
	return Verdict{View: model.EmailViewImbox, Reason: "known contact"}
}

func IsBulkSender(email string) bool {
	return bulkSender.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// ViewForDecision is where stored mail from a sender moves after a screener decision.
func ViewForDecision(d model.SenderDecisionKind) (model.EmailView, bool) {
	switch d {
	case model.SenderDecisionImbox:
		return model.EmailViewImbox, true
	case model.SenderDecisionFeed:
		return model.EmailViewFeed, true
	case model.SenderDecisionPaperTrail:
		return model.EmailViewPaperTrail, true
	}
	return "", false
}
