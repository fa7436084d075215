package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inmohub/listings/shared/config"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/policy"
	"github.com/inmohub/listings/shared/utils"
)

// ReviewNotice describes an approval decision on a listing.
type ReviewNotice struct {
	Kind             policy.ResourceKind
	ListingID        uuid.UUID
	Title            string
	AgentID          uuid.UUID
	Status           constants.ListingStatus
	RejectionMessage string
}

// Notifier tells the owning agent about review decisions. Implementations
// must not block the request.
type Notifier interface {
	ListingReviewed(notice ReviewNotice)
}

// NewNotifier emails agents when SMTP is configured and only logs otherwise.
func NewNotifier(db *gorm.DB, smtp config.SMTPConfig) Notifier {
	if !smtp.Enabled() {
		return logNotifier{}
	}
	return &emailNotifier{db: db, sender: utils.NewEmailSender(smtp)}
}

type logNotifier struct{}

func (logNotifier) ListingReviewed(notice ReviewNotice) {
	slog.Info("listing reviewed",
		"kind", notice.Kind,
		"listing_id", notice.ListingID,
		"status", notice.Status,
	)
}

type emailNotifier struct {
	db     *gorm.DB
	sender *utils.EmailSender
}

func (n *emailNotifier) ListingReviewed(notice ReviewNotice) {
	go func() {
		var agent models.User
		if err := n.db.WithContext(context.Background()).Select("id, name, email").
			First(&agent, "id = ?", notice.AgentID).Error; err != nil {
			slog.Warn("failed to load agent for review notice", "agent_id", notice.AgentID, "error", err)
			return
		}

		subject, body := reviewEmail(agent.Name, notice)
		if err := n.sender.SendEmail(agent.Email, subject, body); err != nil {
			slog.Warn("failed to send review email", "agent_id", notice.AgentID, "error", err)
		}
	}()
}

func reviewEmail(agentName string, notice ReviewNotice) (string, string) {
	agentName = html.EscapeString(agentName)
	title := html.EscapeString(notice.Title)
	if notice.Status == constants.StatusApproved {
		return "Your listing was approved", fmt.Sprintf(`
			<h2>Listing approved</h2>
			<p>Hi %s,</p>
			<p>Your %s <strong>%s</strong> has been approved and is now visible in the public catalog.</p>
		`, agentName, notice.Kind, title)
	}
	return "Your listing was rejected", fmt.Sprintf(`
		<h2>Listing rejected</h2>
		<p>Hi %s,</p>
		<p>Your %s <strong>%s</strong> was rejected for the following reason:</p>
		<blockquote>%s</blockquote>
		<p>Edit the listing or resubmit it once the issue is fixed.</p>
	`, agentName, notice.Kind, title, html.EscapeString(notice.RejectionMessage))
}
