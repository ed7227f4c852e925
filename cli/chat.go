package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Chirag314/kaggle-experiment-orchestrator/agent"
	"github.com/Chirag314/kaggle-experiment-orchestrator/llm"
)

// chatMode selects who answers the user's messages.
type chatMode int

const (
	modeRuleAgent chatMode = iota // local keyword-intent agent
	modeOllama                    // Ollama-assisted, grounded in the portfolio
)

// viewState represents the current state of the application's view.
type viewState int

const (
	viewModeSelector viewState = iota
	viewChat
)

// chatMessage is one rendered turn of the conversation.
type chatMessage struct {
	Role    string
	Content string
}

// item is a selectable entry in the mode list.
type item struct {
	title string
	desc  string
	mode  chatMode
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// Messages produced by the asynchronous commands.
type (
	agentReplyMsg  string
	agentReplyErr  struct{ err error }
	streamChunkMsg string
	streamEndMsg   struct{ meta llm.ResponseMeta }
	streamErrMsg   struct{ err error }
	tickMsg        time.Time
)

// model is the Bubble Tea application model for the portfolio chat.
type model struct {
	cfg       *Config
	agent     *agent.PortfolioAgent
	llmClient *llm.Client

	state     viewState
	mode      chatMode
	isLoading bool
	err       error

	modeList    list.Model
	textArea    textarea.Model
	viewport    viewport.Model
	spinner     spinner.Model
	chatHistory []chatMessage
	responseBuf strings.Builder
	respMeta    llm.ResponseMeta

	width, height    int
	program          *tea.Program
	requestStartTime time.Time
}

func newModel(cfg *Config) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Ask about your experiments..."
	ta.Focus()
	ta.Prompt = "you> "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	items := []list.Item{
		item{title: "Rule-based agent", desc: "Instant answers computed locally", mode: modeRuleAgent},
	}
	if cfg.Ollama.Model != "" {
		items = append(items, item{
			title: "Ollama-assisted",
			desc:  fmt.Sprintf("%s grounded in the portfolio data", cfg.Ollama.Model),
			mode:  modeOllama,
		})
	}
	modeList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	modeList.Title = "Select an agent mode"

	return &model{
		cfg:       cfg,
		agent:     agent.New(cfg.CSVPath),
		llmClient: llm.NewClient(cfg.Ollama.URL, cfg.Ollama.Model),
		state:     viewModeSelector,
		spinner:   s,
		textArea:  ta,
		modeList:  modeList,
		viewport:  viewport.New(100, 5),
	}
}

// ruleReplyCmd asks the local agent for an answer off the UI goroutine.
func ruleReplyCmd(a *agent.PortfolioAgent, message string) tea.Cmd {
	return func() tea.Msg {
		reply, err := a.HandleMessage(message)
		if err != nil {
			return agentReplyErr{err: err}
		}
		return agentReplyMsg(reply)
	}
}

// chunkWriter forwards streamed content into the Bubble Tea event loop.
type chunkWriter struct{ program *tea.Program }

func (w chunkWriter) Write(p []byte) (int, error) {
	w.program.Send(streamChunkMsg(string(p)))
	return len(p), nil
}

// streamAskCmd streams an Ollama answer grounded in the cached analysis.
// Chunks arrive as streamChunkMsg via program.Send, mirroring how responses
// stream into the viewport.
func streamAskCmd(p *tea.Program, client *llm.Client, a *agent.PortfolioAgent, question string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.EnsureAnalysis()
		if err != nil {
			return streamErrMsg{err: err}
		}
		go func() {
			meta, err := client.Ask(context.Background(), question, result, chunkWriter{program: p})
			if err != nil {
				p.Send(streamErrMsg{err: err})
				return
			}
			p.Send(streamEndMsg{meta: meta})
		}()
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.state == viewChat {
				m.state = viewModeSelector
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.modeList.SetSize(msg.Width-2, msg.Height-4)
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 4
		footerHeight := 5
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

	case agentReplyMsg:
		m.chatHistory = append(m.chatHistory, chatMessage{Role: "agent", Content: string(msg)})
		m.isLoading = false
		m.textArea.Focus()
		m.viewport.GotoBottom()
		return m, nil

	case agentReplyErr:
		m.isLoading = false
		m.err = msg.err
		return m, nil

	case streamChunkMsg:
		m.responseBuf.WriteString(string(msg))
		m.viewport.GotoBottom()
		return m, nil

	case streamEndMsg:
		m.respMeta = msg.meta
		if m.responseBuf.Len() > 0 {
			m.chatHistory = append(m.chatHistory, chatMessage{Role: "agent", Content: m.responseBuf.String()})
			m.responseBuf.Reset()
		}
		m.isLoading = false
		m.textArea.Focus()
		m.viewport.GotoBottom()
		return m, nil

	case streamErrMsg:
		m.isLoading = false
		m.err = msg.err
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	switch m.state {
	case viewModeSelector:
		m.modeList, cmd = m.modeList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.modeList.SelectedItem().(item); ok {
				m.mode = selected.mode
				m.state = viewChat
				m.err = nil
				m.textArea.Focus()
			}
		}

	case viewChat:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)

		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			userInput := strings.TrimSpace(m.textArea.Value())
			if userInput != "" {
				m.respMeta = llm.ResponseMeta{}
				m.requestStartTime = time.Now()
				m.chatHistory = append(m.chatHistory, chatMessage{Role: "user", Content: userInput})
				m.textArea.Reset()
				m.isLoading = true
				m.err = nil
				switch m.mode {
				case modeOllama:
					cmds = append(cmds, m.spinner.Tick, streamAskCmd(m.program, m.llmClient, m.agent, userInput), tickCmd())
				default:
					cmds = append(cmds, m.spinner.Tick, ruleReplyCmd(m.agent, userInput), tickCmd())
				}
			}
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case viewModeSelector:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.modeList.View())
	case viewChat:
		return m.chatView()
	default:
		return "Unknown state"
	}
}

// chatView renders the header, conversation history, any in-flight streamed
// response, and the input area.
func (m *model) chatView() string {
	var builder strings.Builder

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	modeInfo := "Mode: rule-based"
	if m.mode == modeOllama {
		modeInfo = fmt.Sprintf("Mode: ollama (%s)", m.llmClient.Model)
	}
	csvInfo := fmt.Sprintf("CSV: %s", m.cfg.CSVPath)
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(modeInfo),
		headerStyle.MarginLeft(1).Render(csvInfo),
	)
	help := lipgloss.NewStyle().Faint(true).Render(" (tab to switch mode, esc to quit)")
	builder.WriteString(status + help + "\n\n")

	var historyBuilder strings.Builder
	userStyle := lipgloss.NewStyle().Bold(true)
	agentStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))

	for _, msg := range m.chatHistory {
		var role string
		if msg.Role == "agent" {
			role = agentStyle.Render("Agent: ")
		} else {
			role = userStyle.Render("You: ")
		}
		wrapped := lipgloss.NewStyle().Width(m.width - lipgloss.Width(role) - 2).Render(msg.Content)
		historyBuilder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, role, wrapped) + "\n")
	}

	if m.responseBuf.Len() > 0 {
		role := agentStyle.Render("Agent: ")
		wrapped := lipgloss.NewStyle().Width(m.width - lipgloss.Width(role) - 2).Render(m.responseBuf.String())
		historyBuilder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, role, wrapped))
	}

	m.viewport.SetContent(historyBuilder.String())
	builder.WriteString(m.viewport.View())

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		builder.WriteString("\n" + m.spinner.View() + fmt.Sprintf(" Thinking... %ss", timer))
	} else {
		builder.WriteString("\n" + m.textArea.View())
	}

	if m.cfg.Debug && m.respMeta.Model != "" {
		builder.WriteString("\n" + formatMeta(m.respMeta))
	}

	return builder.String()
}

// formatMeta renders the response timings reported by the model server.
func formatMeta(meta llm.ResponseMeta) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	loadDur := float64(meta.LoadDuration) / 1e9
	promptEvalDur := float64(meta.PromptEvalDuration) / 1e9
	evalDur := float64(meta.EvalDuration) / 1e9
	totalDur := float64(meta.TotalDuration) / 1e9

	return style.Render(fmt.Sprintf(
		"  >>> [Load: %.1fs] [Prompt Eval: %.1fs | %d Tokens] [Response Eval: %.1fs | %d Tokens] [Total: %.1fs]",
		loadDur,
		promptEvalDur,
		meta.PromptEvalCount,
		evalDur,
		meta.EvalCount,
		totalDur,
	))
}

// StartChat loads the configuration and runs the chat program until the user
// quits.
func StartChat(configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	m := newModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.program = p

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running chat program: %w", err)
	}
	return nil
}
