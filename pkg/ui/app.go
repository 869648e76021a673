package ui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/waql-tui/pkg/config"
	"github.com/user/waql-tui/pkg/export"
	"github.com/user/waql-tui/pkg/models"
	"github.com/user/waql-tui/pkg/query"
	"github.com/user/waql-tui/pkg/waql"
)

const maxQueryHistory = 25

// editorCommands maps chorded keys to editor commands
var editorCommands = map[string]string{
	"ctrl+/":        "toggle-comment",
	"ctrl+_":        "toggle-comment",
	"ctrl+a":        "select-all",
	"ctrl+home":     "line-home",
	"alt+a":         "line-home",
	"ctrl+end":      "line-end",
	"alt+e":         "line-end",
	"ctrl+left":     "word-left",
	"alt+b":         "word-left",
	"ctrl+right":    "word-right",
	"alt+f":         "word-right",
	"ctrl+w":        "delete-word-left",
	"alt+backspace": "delete-word-left",
	"ctrl+delete":   "delete-word-right",
	"alt+d":         "delete-word-right",
	"ctrl+d":        "duplicate-line",
	"alt+]":         "indent",
	"alt+[":         "unindent",
}

// App represents the main TUI application
type App struct {
	state              *models.AppState
	width              int
	height             int
	settings           *config.Settings
	syntax             *waql.Syntax
	editor             *Editor
	results            *ResultsView
	settingsPanel      *SettingsPanel
	exportDialog       *ExportDialog
	detail             *RowDetail
	helpModal          *HelpModal
	status             *StatusLine
	clipboard          *ClipboardManager
	exporter           *export.Exporter
	spinner            spinner.Model
	keys               keyMap
	running            bool
	activeModalName    string
	focusedPane        string
	vimMode            bool
	startupQuery       string
	queryHistory       []string
	queryHistoryCursor int
	queryExec          func(string) (query.ExecuteResponse, error)
	pingFn             func() (string, error)
	persistSettingsFn  func(config.Settings) error
	persistHistoryFn   func(string) error
}

type queryResultMsg struct {
	query string
	resp  query.ExecuteResponse
	err   error
}

type pingResultMsg struct {
	version string
	err     error
}

type editorResultMsg struct {
	path string
	err  error
}

// NewApp creates a new TUI application
func NewApp(appState *models.AppState, settings config.Settings) *App {
	if appState == nil {
		appState = &models.AppState{}
	}
	syntax := waql.DefaultSyntax()
	owned := settings
	theme := waql.ThemeByName(owned.ThemeName)

	editor := NewEditor(syntax, newCompleter(syntax, owned.CustomKeywords), theme)
	results := NewResultsView()
	results.SetTheme(theme)

	exporter := export.NewExporter()
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(theme.Function)

	a := &App{
		state:              appState,
		width:              120,
		height:             40,
		syntax:             syntax,
		editor:             editor,
		results:            results,
		helpModal:          NewHelpModal(),
		status:             NewStatusLine(),
		clipboard:          NewClipboardManager(),
		exporter:           exporter,
		exportDialog:       NewExportDialog(exporter),
		spinner:            spin,
		keys:               newKeyMap(),
		activeModalName:    models.ModalNone,
		focusedPane:        models.PaneEditor,
		queryHistory:       []string{},
		queryHistoryCursor: -1,
	}
	a.settings = &owned
	a.settingsPanel = NewSettingsPanel(a.settings)
	a.state.UIState.FocusedPane = a.focusedPane
	a.state.UIState.ActiveModal = a.activeModalName
	a.layout()
	return a
}

func newCompleter(syntax *waql.Syntax, keywords []string) *waql.Completer {
	completer := waql.NewCompleter(syntax)
	for _, kw := range keywords {
		completer.PushWord(kw)
	}
	return completer
}

// SetQueryExecutor sets the function used to run a query
func (a *App) SetQueryExecutor(fn func(string) (query.ExecuteResponse, error)) {
	a.queryExec = fn
}

// SetPingFn sets the function used to check the Wwise connection on startup
func (a *App) SetPingFn(fn func() (string, error)) {
	a.pingFn = fn
}

// SetSettingsPersistFn sets the callback that writes settings after every change
func (a *App) SetSettingsPersistFn(fn func(config.Settings) error) {
	a.persistSettingsFn = fn
}

// SetQueryHistoryPersistFn sets persistence callback for query history appends.
func (a *App) SetQueryHistoryPersistFn(fn func(string) error) {
	a.persistHistoryFn = fn
}

// SetQueryHistory sets initial query history (most recent first).
func (a *App) SetQueryHistory(history []string) {
	a.queryHistory = append([]string{}, history...)
	if len(a.queryHistory) > maxQueryHistory {
		a.queryHistory = a.queryHistory[:maxQueryHistory]
	}
}

// SetStartupQuery loads text into the editor and runs it during Init.
func (a *App) SetStartupQuery(text string) {
	a.startupQuery = text
	a.editor.SetInput(text)
}

// SetInitialQuery loads text into the editor without running it.
func (a *App) SetInitialQuery(text string) {
	a.editor.SetInput(text)
}

// SetVimMode enables vim-style pane switching.
func (a *App) SetVimMode(enabled bool) {
	a.vimMode = enabled
}

// Settings returns a copy of the current settings
func (a *App) Settings() config.Settings {
	return *a.settings
}

// Init initializes the app (required by Bubble Tea)
func (a *App) Init() tea.Cmd {
	a.state.IsReady = true
	var cmds []tea.Cmd
	if a.pingFn != nil {
		cmds = append(cmds, a.pingCmd())
	}
	if strings.TrimSpace(a.startupQuery) != "" {
		cmds = append(cmds, a.runQuery())
	}
	return tea.Batch(cmds...)
}

// Update handles events and state mutations
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case spinner.TickMsg:
		if !a.running {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case queryResultMsg:
		a.handleQueryResult(msg)
		return a, nil

	case pingResultMsg:
		if msg.err != nil {
			a.state.LastError = msg.err
			a.status.Error(query.Describe(msg.err))
			return a, nil
		}
		a.state.WwiseVersion = msg.version
		a.status.Info("Connected to Wwise " + msg.version)
		return a, nil

	case editorResultMsg:
		a.handleEditorResult(msg)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyPress(msg)
	}

	return a, nil
}

func (a *App) handleQueryResult(msg queryResultMsg) {
	a.running = false
	a.state.ResultState.IsLoading = false
	a.state.LastError = msg.err

	switch {
	case msg.err == nil:
		a.results.SetResult(msg.resp.Result, msg.resp.RawJSON)
		a.recordResult(msg)
		a.status.Success(fmt.Sprintf("Query complete: %d objects in %s", msg.resp.Count, msg.resp.Duration.Round(time.Millisecond)))
		a.addQueryHistory(msg.query)
	case errors.Is(msg.err, query.ErrEmptyResult):
		a.results.SetResult(nil, msg.resp.RawJSON)
		a.recordResult(msg)
		a.status.Info(query.Describe(msg.err))
		a.addQueryHistory(msg.query)
	default:
		a.status.Error(query.Describe(msg.err))
	}
}

func (a *App) recordResult(msg queryResultMsg) {
	a.state.ResultState.Result = a.results.Result()
	a.state.ResultState.RawJSON = msg.resp.RawJSON
	a.state.ResultState.LastQuery = msg.query
	a.state.ResultState.ExecutedAt = msg.resp.ExecutedAt
	a.state.ResultState.Duration = msg.resp.Duration
}

func (a *App) handleEditorResult(msg editorResultMsg) {
	defer os.Remove(msg.path)
	if msg.err != nil {
		a.status.Error("External editor failed: " + msg.err.Error())
		return
	}
	data, err := os.ReadFile(msg.path)
	if err != nil {
		a.status.Error("Read edited query failed: " + err.Error())
		return
	}
	a.editor.SetInput(strings.TrimRight(string(data), "\n"))
	a.status.Info("Loaded query from external editor")
}

// View renders the UI
func (a *App) View() string {
	if !a.state.IsReady {
		return "Loading...\n"
	}

	if a.activeModalName == models.ModalHelp {
		return a.renderHelp()
	}

	topBar := a.renderTopBar()
	editor := a.editor.Render(a.width, a.editorRows(), a.focusedPane == models.PaneEditor && a.activeModalName == models.ModalNone)
	footer := a.renderStatusPanel()

	overhead := strings.Count(topBar, "\n") + strings.Count(editor, "\n") + strings.Count(footer, "\n")
	resultsHeight := maxInt(4, a.height-overhead)
	a.results.SetSize(a.width, resultsHeight)

	output := renderVerticalSplit(
		[]string{topBar, editor, a.results.Render(), footer},
		[]int{0, 0, resultsHeight, 0},
	)

	switch a.activeModalName {
	case models.ModalSettings:
		output = renderCenteredPopup(output, a.settingsPanel.Render(a.width, a.height), a.width, a.height)
	case models.ModalExport:
		output = renderCenteredPopup(output, a.exportDialog.Render(a.width, a.results.Result().Len()), a.width, a.height)
	case models.ModalDetail:
		if a.detail != nil {
			output = renderCenteredPopup(output, a.detail.Render(a.width, a.height, waql.ThemeByName(a.settings.ThemeName)), a.width, a.height)
		}
	}
	return output
}

// editorRows maps the font size setting to editor height
func (a *App) editorRows() int {
	rows := maxInt(3, a.settings.FontSize/2)
	if a.height > 0 {
		rows = minInt(rows, maxInt(3, a.height/2-2))
	}
	return rows
}

func (a *App) layout() {
	a.results.SetSize(a.width, maxInt(4, a.height-a.editorRows()-6))
}

// handleKeyPress processes keyboard input
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.quit) {
		return a, tea.Quit
	}

	switch a.activeModalName {
	case models.ModalSettings:
		return a.handleSettingsInput(msg)
	case models.ModalExport:
		return a.handleExportInput(msg)
	case models.ModalDetail:
		return a.handleDetailInput(msg)
	case models.ModalHelp:
		if key.Matches(msg, a.keys.close, a.keys.toggleHelp) || msg.String() == "q" {
			a.setModal(models.ModalNone)
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.toggleHelp):
		a.setModal(models.ModalHelp)
		return a, nil
	case key.Matches(msg, a.keys.settings):
		a.setModal(models.ModalSettings)
		return a, nil
	case key.Matches(msg, a.keys.export):
		if a.results.Result().IsEmpty() {
			a.status.Error("No results to export")
			return a, nil
		}
		a.setModal(models.ModalExport)
		return a, a.exportDialog.Open()
	case key.Matches(msg, a.keys.clear):
		a.results.Clear()
		a.state.ResultState = models.ResultState{}
		a.status.Info("Results cleared")
		return a, nil
	case key.Matches(msg, a.keys.rawJSON):
		raw := a.results.ToggleRaw()
		a.state.UIState.ShowRawJSON = raw
		return a, nil
	case key.Matches(msg, a.keys.focus):
		a.toggleFocus()
		return a, nil
	case key.Matches(msg, a.keys.save):
		a.saveCurrentQuery()
		return a, nil
	case key.Matches(msg, a.keys.history):
		a.cycleQueryHistory(1)
		return a, nil
	case key.Matches(msg, a.keys.external):
		return a, a.openQueryInEditorCmd()
	case msg.String() == "ctrl+r":
		return a, a.runQuery()
	}

	if a.focusedPane == models.PaneResults {
		return a.handleResultsInput(msg)
	}
	return a.handleEditorInput(msg)
}

func (a *App) handleResultsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.copyRow):
		a.copySelectedRow()
		return a, nil
	case key.Matches(msg, a.keys.copyFormat):
		a.status.Info("Copy format: " + strings.ToUpper(a.clipboard.NextCopyFormat()))
		return a, nil
	case key.Matches(msg, a.keys.detail):
		a.openRowDetail()
		return a, nil
	case key.Matches(msg, a.keys.close):
		a.setFocus(models.PaneEditor)
		return a, nil
	case a.vimMode && msg.String() == "i":
		a.setFocus(models.PaneEditor)
		return a, nil
	}
	return a, a.results.Update(msg)
}

func (a *App) handleEditorInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editor.PopupOpen() {
		switch msg.String() {
		case "up":
			a.editor.MoveSelection(-1)
			return a, nil
		case "down":
			a.editor.MoveSelection(1)
			return a, nil
		case "tab", "enter":
			a.editor.AcceptCompletion()
			return a, nil
		case "esc":
			a.editor.DismissCompletion()
			return a, nil
		}
	}

	if msg.Paste && msg.Type == tea.KeyRunes {
		a.editor.InsertText(string(msg.Runes))
		return a, nil
	}

	// Handle pasted/typed runes first so newline in paste becomes text, not submit.
	if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) > 0 {
		for _, r := range msg.Runes {
			switch r {
			case '\r', '\n':
				a.editor.HandleKey("newline")
			default:
				a.editor.HandleKey(string(r))
			}
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.run):
		return a, a.runQuery()
	case key.Matches(msg, a.keys.newline):
		a.editor.HandleKey("newline")
		return a, nil
	case key.Matches(msg, a.keys.complete):
		if a.editor.TriggerCompletion() && len(a.editor.Candidates()) == 1 {
			a.editor.AcceptCompletion()
		}
		return a, nil
	case key.Matches(msg, a.keys.close):
		if a.vimMode {
			a.setFocus(models.PaneResults)
		}
		return a, nil
	}

	if cmd, ok := editorCommands[msg.String()]; ok {
		a.editor.HandleKey(cmd)
		return a, nil
	}

	switch msg.Type {
	case tea.KeyBackspace:
		a.editor.HandleKey("backspace")
	case tea.KeyDelete:
		a.editor.HandleKey("delete")
	case tea.KeyLeft:
		a.editor.HandleKey("left")
	case tea.KeyRight:
		a.editor.HandleKey("right")
	case tea.KeyUp:
		a.editor.HandleKey("up")
	case tea.KeyDown:
		a.editor.HandleKey("down")
	case tea.KeyHome:
		a.editor.HandleKey("home")
	case tea.KeyEnd:
		a.editor.HandleKey("end")
	case tea.KeySpace:
		a.editor.HandleKey(" ")
	}
	return a, nil
}

func (a *App) handleSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.settingsPanel.Editing() && key.Matches(msg, a.keys.close, a.keys.settings) {
		a.setModal(models.ModalNone)
		return a, nil
	}

	action := a.settingsPanel.HandleKey(msg)
	switch action.Kind {
	case ActionThemeChanged:
		a.applyTheme()
		a.status.Info("Theme: " + action.Value)
	case ActionFontChanged:
		a.layout()
		a.status.Info("Font size: " + action.Value)
	case ActionLoadQuery:
		a.editor.SetInput(action.Value)
		a.setModal(models.ModalNone)
		a.setFocus(models.PaneEditor)
		a.status.Info("Loaded saved query")
	case ActionRemoveQuery:
		a.status.Info("Deleted saved query " + action.Value)
	case ActionAddKeyword:
		a.editor.Completer().PushWord(action.Value)
		a.status.Info("Added keyword " + action.Value)
	case ActionRemoveKeyword:
		a.editor.SetCompleter(newCompleter(a.syntax, a.settings.CustomKeywords))
		a.status.Info("Removed keyword " + action.Value)
	case ActionRejected:
		if strings.TrimSpace(action.Value) == "" {
			a.status.Error("Keyword is empty")
		} else {
			a.status.Error("Keyword already exists: " + action.Value)
		}
	}
	if action.Changed() {
		a.persistSettings()
	}
	return a, nil
}

func (a *App) handleDetailInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		a.detail = nil
		a.setModal(models.ModalNone)
	case "j", "down":
		a.detail.Move(1)
	case "k", "up":
		a.detail.Move(-1)
	case "pgdown", "ctrl+f":
		a.detail.Move(10)
	case "pgup", "ctrl+b":
		a.detail.Move(-10)
	case "l", "right":
		a.detail.Expand()
	case "h", "left":
		a.detail.Collapse()
	case "E":
		a.detail.ExpandAll()
	case "y":
		path, value := a.detail.Selected()
		if err := a.clipboard.write(value); err != nil {
			a.status.Error("Copy failed: " + err.Error())
		} else {
			a.status.Success("Copied " + path)
		}
	}
	return a, nil
}

func (a *App) openRowDetail() {
	obj, ok := a.results.SelectedObject()
	if !ok {
		a.status.Error("No row selected")
		return
	}
	title := fmt.Sprintf("ROW %d", a.results.SelectedIndex()+1)
	if name, ok := obj["name"].(string); ok && name != "" {
		title += " " + name
	}
	a.detail = NewRowDetail(title, obj)
	a.setModal(models.ModalDetail)
}

func (a *App) handleExportInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.exportDialog.Close()
		a.setModal(models.ModalNone)
		return a, nil
	case "enter":
		path, err := a.exportDialog.Submit(a.results.Result())
		if errors.Is(err, export.ErrFileExists) {
			a.status.Info(path + " exists. Press enter again to overwrite")
			return a, nil
		}
		if err != nil {
			a.status.Error("Export failed: " + err.Error())
			return a, nil
		}
		a.exportDialog.Close()
		a.setModal(models.ModalNone)
		a.status.Success(fmt.Sprintf("Exported %d rows to %s", a.results.Result().Len(), path))
		return a, nil
	}
	return a, a.exportDialog.Update(msg)
}

// runQuery starts executing the editor text unless a run is already in flight
func (a *App) runQuery() tea.Cmd {
	if a.running {
		a.status.Info("A query is already running")
		return nil
	}
	a.editor.DismissCompletion()
	text := a.editor.GetInput()
	if query.NewValidator().SanitizeQuery(text) == "" {
		a.status.Error(query.Describe(query.ErrEmptyQuery))
		return nil
	}
	if a.queryExec == nil {
		a.status.Error(query.Describe(query.ErrConnection))
		return nil
	}

	a.running = true
	a.state.ResultState.IsLoading = true
	a.state.CurrentQuery = models.Query{Text: text}
	a.queryHistoryCursor = -1
	return tea.Batch(a.spinner.Tick, a.runQueryCmd(text))
}

func (a *App) runQueryCmd(text string) tea.Cmd {
	run := a.queryExec
	return func() tea.Msg {
		resp, err := run(text)
		return queryResultMsg{query: text, resp: resp, err: err}
	}
}

func (a *App) pingCmd() tea.Cmd {
	ping := a.pingFn
	return func() tea.Msg {
		version, err := ping()
		return pingResultMsg{version: version, err: err}
	}
}

func (a *App) openQueryInEditorCmd() tea.Cmd {
	tmpFile, err := os.CreateTemp("", "waql-query-*.waql")
	if err != nil {
		return func() tea.Msg { return editorResultMsg{err: err} }
	}
	path := tmpFile.Name()
	if _, err := tmpFile.WriteString(a.editor.GetInput()); err != nil {
		_ = tmpFile.Close()
		return func() tea.Msg { return editorResultMsg{path: path, err: err} }
	}
	_ = tmpFile.Close()

	editor := os.Getenv("EDITOR")
	if strings.TrimSpace(editor) == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorResultMsg{path: path, err: err}
	})
}

func (a *App) saveCurrentQuery() {
	text := a.editor.GetInput()
	if strings.TrimSpace(text) == "" {
		a.status.Error("Nothing to save")
		return
	}
	if !a.settings.AddSavedQuery("", text) {
		a.status.Info("Query is already saved")
		return
	}
	name := a.settings.SavedQueries[len(a.settings.SavedQueries)-1].Name
	if a.persistSettings() {
		a.status.Success("Saved query " + name)
	}
}

// persistSettings writes settings and reports success
func (a *App) persistSettings() bool {
	if a.persistSettingsFn == nil {
		return true
	}
	if err := a.persistSettingsFn(*a.settings); err != nil {
		a.status.Error("Save settings failed: " + err.Error())
		return false
	}
	return true
}

func (a *App) applyTheme() {
	theme := waql.ThemeByName(a.settings.ThemeName)
	a.editor.SetTheme(theme)
	a.results.SetTheme(theme)
	a.spinner.Style = lipgloss.NewStyle().Foreground(theme.Function)
}

func (a *App) copySelectedRow() {
	idx := a.results.SelectedIndex()
	if idx < 0 {
		a.status.Error("No row selected")
		return
	}
	if _, err := a.clipboard.CopyRow(a.results.Result(), idx); err != nil {
		a.status.Error("Copy failed: " + err.Error())
		return
	}
	a.status.Success(fmt.Sprintf("Copied row %d as %s", idx+1, strings.ToUpper(a.clipboard.GetCopyFormat())))
}

func (a *App) addQueryHistory(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for i, existing := range a.queryHistory {
		if existing == text {
			a.queryHistory = append(a.queryHistory[:i], a.queryHistory[i+1:]...)
			break
		}
	}
	a.queryHistory = append([]string{text}, a.queryHistory...)
	if len(a.queryHistory) > maxQueryHistory {
		a.queryHistory = a.queryHistory[:maxQueryHistory]
	}
	if a.persistHistoryFn != nil {
		if err := a.persistHistoryFn(text); err != nil {
			a.status.Error("Persist history failed: " + err.Error())
		}
	}
}

func (a *App) cycleQueryHistory(delta int) {
	if len(a.queryHistory) == 0 {
		a.status.Info("No query history")
		return
	}
	a.queryHistoryCursor += delta
	if a.queryHistoryCursor < 0 {
		a.queryHistoryCursor = 0
	}
	if a.queryHistoryCursor >= len(a.queryHistory) {
		a.queryHistoryCursor = len(a.queryHistory) - 1
	}
	a.editor.SetInput(a.queryHistory[a.queryHistoryCursor])
	a.setFocus(models.PaneEditor)
}

func (a *App) toggleFocus() {
	if a.focusedPane == models.PaneEditor {
		a.setFocus(models.PaneResults)
	} else {
		a.setFocus(models.PaneEditor)
	}
}

func (a *App) setFocus(pane string) {
	a.focusedPane = pane
	a.state.UIState.FocusedPane = pane
	if pane == models.PaneResults {
		a.editor.DismissCompletion()
		a.results.Focus()
	} else {
		a.results.Blur()
	}
}

func (a *App) setModal(name string) {
	a.activeModalName = name
	a.state.UIState.ActiveModal = name
	a.helpModal.SetVisible(name == models.ModalHelp)
}

func (a *App) renderTopBar() string {
	theme := waql.ThemeByName(a.settings.ThemeName)
	left := lipgloss.NewStyle().Bold(true).
		Foreground(theme.Background).
		Background(theme.Keyword).
		Padding(0, 1).
		Render("WAQL Tool")

	mode := "ready"
	if a.running {
		mode = a.spinner.View() + " running"
	}
	version := a.state.WwiseVersion
	if version == "" {
		version = "not connected"
	}
	rightText := fmt.Sprintf("wwise:%s  %s  theme:%s  pane:%s", version, mode, theme.Name, a.focusedPane)
	right := lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Selection).
		Padding(0, 1).
		Render(rightText)
	fill := maxInt(0, a.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", fill) + right + "\n"
}

func (a *App) renderStatusPanel() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("┣%s\n", strings.Repeat("━", maxInt(0, a.width-1))))

	summary := fmt.Sprintf("rows:%d  saved:%d  keywords:%d", a.results.Result().Len(), len(a.settings.SavedQueries), len(a.settings.CustomKeywords))
	if !a.state.ResultState.ExecutedAt.IsZero() {
		summary += fmt.Sprintf("  last run:%s (%s)", a.state.ResultState.ExecutedAt.Format("15:04:05"), a.state.ResultState.Duration.Round(time.Millisecond))
	}
	if last := a.exporter.GetLastExportPath(); last != "" {
		summary += "  last export:" + last
	}
	sb.WriteString("┃ " + summary + "\n")
	if line := a.status.Render(a.width - 2); line != "" {
		sb.WriteString("┃ " + line + "\n")
	}
	sb.WriteString("┃ " + a.helpModal.GetShortHelp(a.width-2) + "\n")
	return sb.String()
}

func (a *App) renderHelp() string {
	out := a.helpModal.Render(a.width, a.height)
	if notices := a.status.RenderList(a.width, 5); notices != "" {
		out += "\n" + notices
	}
	return out
}
