package campaignwizard

import (
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/campaignr/internal/campaign"
)

// MailboxStatusMsg carries the provider's view of the mailbox connection.
type MailboxStatusMsg struct {
	Conn campaign.MailboxConnection
	Err  error
}

// MailboxDisconnectedMsg is sent when a disconnect request finishes.
type MailboxDisconnectedMsg struct {
	Err error
}

// AttachmentsLoadedMsg carries the attachment catalog.
type AttachmentsLoadedMsg struct {
	Attachments []campaign.Attachment
	Err         error
}

// PlaceSuggestionsMsg carries location completions for a query.
type PlaceSuggestionsMsg struct {
	seq         uint64
	Suggestions []string
	Err         error
}

// placeQueryMsg fires when the location input has been quiet long enough.
type placeQueryMsg struct {
	seq   uint64
	query string
}

// TemplatesGeneratedMsg carries AI-written templates. The result only
// applies to the template it was requested for.
type TemplatesGeneratedMsg struct {
	Templates []campaign.TemplateContent
	Err       error

	target *campaign.TemplateContent
}

// TemplateEditedMsg carries a template body written in the external editor.
type TemplateEditedMsg struct {
	Body string

	target *campaign.TemplateContent
}

// VariantGeneratedMsg carries one generated variant for a slot.
type VariantGeneratedMsg struct {
	Section campaign.Section
	Slot    campaign.SlotID
	Text    string
	Err     error
}

// CampaignSavedMsg is sent once the record is stored.
type CampaignSavedMsg struct {
	ID string
}

// SaveErrorMsg is sent when storing the record fails.
type SaveErrorMsg struct {
	Err error
}

// RetrySaveMsg asks the wizard to submit again after a failed save.
type RetrySaveMsg struct{}

// nextStepMsg asks the wizard to validate the current step and advance.
type nextStepMsg struct{}

// showToastMsg asks the wizard to show a notification.
type showToastMsg struct {
	text    string
	isError bool
}

func toastCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return showToastMsg{text: text, isError: isError}
	}
}

func nextStep() tea.Msg {
	return nextStepMsg{}
}
