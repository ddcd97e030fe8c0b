// Package tui implements the interactive chat interface built on
// Bubble Tea. It talks to the core exclusively through driving ports.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driving"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	historyBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBox       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// answerMsg carries the outcome of one turn back into the update loop.
type answerMsg struct {
	question   string
	text       string
	matchCount int
	conv       *domain.Conversation
	err        error
}

// Chat is the Bubble Tea model for an interactive conversation.
type Chat struct {
	chat     driving.Chat
	convs    driving.ConversationManager
	ownerID  string
	conv     *domain.Conversation
	history  []domain.Message
	input    textinput.Model
	viewport viewport.Model
	status   string
	waiting  bool
	ready    bool
}

// NewChat creates the chat model. A non-empty conversationID resumes
// that conversation; otherwise one is created on the first message.
func NewChat(chat driving.Chat, convs driving.ConversationManager, ownerID, conversationID string) (Chat, error) {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your documents"
	ti.Focus()
	ti.CharLimit = 0

	m := Chat{
		chat:     chat,
		convs:    convs,
		ownerID:  ownerID,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   "Ready.",
	}

	if conversationID != "" {
		ctx := context.Background()
		history, err := convs.Messages(ctx, ownerID, conversationID)
		if err != nil {
			return Chat{}, fmt.Errorf("loading conversation: %w", err)
		}
		m.conv = &domain.Conversation{ID: conversationID, OwnerID: ownerID}
		m.history = history
		m.status = fmt.Sprintf("Resumed conversation %s.", conversationID)
	}

	return m, nil
}

// Init starts the text input cursor blink.
func (m Chat) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, hh := historyBox.GetFrameSize()
		_, ih := inputBox.GetFrameSize()
		reserved := 2 + ih + 1 // header + input frame + status
		vh := msg.Height - reserved - hh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-4)
		m.viewport.Height = vh
		m.refreshHistory()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				break
			}
			m.input.Reset()
			m.waiting = true
			m.status = "Thinking..."
			m.history = append(m.history, domain.Message{Role: domain.RoleUser, Content: question})
			m.refreshHistory()
			return m, m.answerCmd(question)
		}

	case answerMsg:
		m.waiting = false
		if msg.conv != nil {
			m.conv = msg.conv
		}
		if msg.err != nil {
			// Drop the unanswered question so history matches what
			// was durably recorded.
			m.history = m.history[:len(m.history)-1]
			m.status = errorStyle.Render("Error: " + msg.err.Error())
			m.refreshHistory()
			return m, nil
		}
		m.history = append(m.history, domain.Message{Role: domain.RoleAssistant, Content: msg.text})
		if msg.matchCount > 0 {
			m.status = fmt.Sprintf("Answered from %d document excerpts.", msg.matchCount)
		} else {
			m.status = "No matching excerpts; answered from general knowledge."
		}
		m.refreshHistory()
		return m, nil
	}

	// Unhandled events go to both widgets. The viewport only sees the
	// paging keys and non-key events (mouse wheel); its other default
	// bindings, space and j/k, belong to the text input.
	var inputCmd, vpCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	switch key := msg.(type) {
	case tea.KeyMsg:
		if key.Type == tea.KeyPgUp || key.Type == tea.KeyPgDown {
			m.viewport, vpCmd = m.viewport.Update(msg)
		}
	default:
		m.viewport, vpCmd = m.viewport.Update(msg)
	}
	return m, tea.Batch(inputCmd, vpCmd)
}

// View renders the chat layout.
func (m Chat) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := "Docsage Chat"
	if m.conv != nil && m.conv.Title != "" {
		title = "Docsage Chat - " + m.conv.Title
	}
	header := headerStyle.Render(title)
	hint := subtleStyle.Render("Enter to send, PgUp/PgDn to scroll, Ctrl+C to quit")
	history := historyBox.Render(m.viewport.View())
	input := inputBox.Render(m.input.View())
	return header + "\n" + hint + "\n" + history + "\n" + input + "\n" + m.status
}

// answerCmd runs one turn off the update loop: answer, then record.
func (m Chat) answerCmd(question string) tea.Cmd {
	history := append([]domain.Message(nil), m.history...)
	conv := m.conv

	return func() tea.Msg {
		ctx := context.Background()

		if conv == nil {
			created, err := m.convs.Create(ctx, m.ownerID, question)
			if err != nil {
				return answerMsg{question: question, err: err}
			}
			conv = created
		}

		answer, err := m.chat.Answer(ctx, driving.AnswerRequest{
			OwnerID:  m.ownerID,
			Messages: history,
		})
		if err != nil {
			return answerMsg{question: question, conv: conv, err: err}
		}

		if err := m.convs.AppendTurn(ctx, m.ownerID, conv.ID, question, answer.Text); err != nil {
			return answerMsg{question: question, conv: conv, err: err}
		}

		return answerMsg{question: question, conv: conv, text: answer.Text, matchCount: answer.MatchCount}
	}
}

// refreshHistory re-renders the transcript into the viewport.
func (m *Chat) refreshHistory() {
	if len(m.history) == 0 {
		m.viewport.SetContent(subtleStyle.Render("No messages yet."))
		return
	}

	var b strings.Builder
	for i, msg := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case domain.RoleAssistant:
			b.WriteString(assistantStyle.Render("Docsage"))
		default:
			b.WriteString(userStyle.Render("You"))
		}
		b.WriteString("\n")
		b.WriteString(msg.Content)
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
