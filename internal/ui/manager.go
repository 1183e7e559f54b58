package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"subpage/internal/deeplink"
	"subpage/internal/guide"
	"subpage/internal/logging"
	"subpage/internal/platform"
)

// Options описывает параметры инициализации UI Manager.
type Options struct {
	App     fyne.App
	AppName string
	Logger  *logging.Logger
	// Build строит инструкцию для выбранной платформы. nil означает, что показывать нечего.
	Build func(platform.Platform) *guide.View
	// Opener открывает ссылки кнопок. По умолчанию используется App.
	Opener      deeplink.Opener
	Initial     platform.Platform
	Unavailable string
}

// Manager показывает инструкцию по установке в окне Fyne.
type Manager struct {
	app          fyne.App
	appName      string
	logger       *logging.Logger
	build        func(platform.Platform) *guide.View
	opener       deeplink.Opener
	unavailable  string
	win          fyne.Window
	title        *widget.Label
	body         *fyne.Container
	selector     *widget.Select
	tabs         *container.AppTabs
	view         *guide.View
	selected     platform.Platform
	shutdownOnce sync.Once
}

// NewManager создаёт окно и строит инструкцию для начальной платформы.
func NewManager(opts Options) (*Manager, error) {
	if opts.App == nil {
		return nil, errors.New("fyne app is nil")
	}
	if opts.Build == nil {
		return nil, errors.New("guide builder is nil")
	}
	name := strings.TrimSpace(opts.AppName)
	if name == "" {
		name = "Subscription"
	}
	opener := opts.Opener
	if opener == nil {
		opener = opts.App
	}
	initial := opts.Initial
	if initial == "" {
		initial = platform.Default
	}
	opts.App.Settings().SetTheme(newGuideTheme())
	m := &Manager{
		app:         opts.App,
		appName:     name,
		logger:      opts.Logger,
		build:       opts.Build,
		opener:      opener,
		unavailable: opts.Unavailable,
		selected:    initial,
	}
	m.buildWindow()
	m.render(initial)
	return m, nil
}

// Window возвращает окно инструкции.
func (m *Manager) Window() fyne.Window {
	return m.win
}

// View возвращает последнюю построенную инструкцию.
func (m *Manager) View() *guide.View {
	return m.view
}

// Selected возвращает платформу, выбранную пользователем или определённую автоматически.
func (m *Manager) Selected() platform.Platform {
	return m.selected
}

// Select переключает инструкцию на платформу p. Безопасен для вызова из любой goroutine.
func (m *Manager) Select(p platform.Platform) {
	m.callOnUI(func() { m.render(p) }, false)
}

// Reload перестраивает инструкцию, например после получения подписки.
func (m *Manager) Reload() {
	m.callOnUI(func() { m.render(m.selected) }, false)
}

// RunMainLoop показывает окно и блокирует текущую горутину до завершения цикла Fyne.
func (m *Manager) RunMainLoop() {
	if m.win == nil {
		return
	}
	m.win.ShowAndRun()
}

// Shutdown закрывает окно и Fyne-приложение.
func (m *Manager) Shutdown() {
	m.shutdownOnce.Do(func() {
		m.callOnUI(func() {
			if m.win != nil {
				m.win.Close()
			}
			m.app.Quit()
		}, true)
	})
}

func (m *Manager) buildWindow() {
	win := m.app.NewWindow(m.appName)
	win.Resize(fyne.NewSize(560, 680))
	win.CenterOnScreen()

	m.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	m.body = container.NewStack()
	content := container.NewBorder(m.title, nil, nil, nil, m.body)
	win.SetContent(container.NewPadded(content))
	m.win = win
}

func (m *Manager) render(p platform.Platform) {
	view := m.build(p)
	m.view = view
	m.selector = nil
	m.tabs = nil
	if view == nil {
		m.selected = p
		m.title.SetText("")
		message := widget.NewLabel(m.unavailable)
		message.Wrapping = fyne.TextWrapWord
		m.setBody(message)
		return
	}
	m.selected = view.Selected
	m.title.SetText(view.Title)
	if view.Tabs {
		m.setBody(m.buildTabs(view))
		return
	}

	current, ok := view.Current()
	if !ok {
		m.setBody(widget.NewLabel(m.unavailable))
		return
	}
	panel := m.buildPanel(current)
	if !view.ShowSelector {
		m.setBody(panel)
		return
	}
	m.setBody(container.NewBorder(m.buildSelector(view), nil, nil, nil, panel))
}

func (m *Manager) setBody(obj fyne.CanvasObject) {
	m.body.Objects = []fyne.CanvasObject{obj}
	m.body.Refresh()
}

func (m *Manager) buildTabs(view *guide.View) *container.AppTabs {
	tabs := container.NewAppTabs()
	for _, option := range view.Options {
		panel, ok := view.Panel(option.Platform)
		if !ok {
			continue
		}
		tabs.Append(container.NewTabItem(option.Label, m.buildPanel(panel)))
	}
	for i, option := range view.Options {
		if option.Platform == view.Selected && i < len(tabs.Items) {
			tabs.SelectIndex(i)
		}
	}
	tabs.OnSelected = func(item *container.TabItem) {
		if p, ok := platformByLabel(view.Options, item.Text); ok {
			m.selected = p
		}
	}
	m.tabs = tabs
	return tabs
}

func (m *Manager) buildSelector(view *guide.View) *widget.Select {
	labels := make([]string, 0, len(view.Options))
	current := ""
	for _, option := range view.Options {
		labels = append(labels, option.Label)
		if option.Platform == view.Selected {
			current = option.Label
		}
	}
	sel := widget.NewSelect(labels, nil)
	sel.PlaceHolder = view.SelectPlaceholder
	sel.SetSelected(current)
	// OnChanged назначается после SetSelected, чтобы начальный выбор не перестраивал окно.
	sel.OnChanged = func(label string) {
		p, ok := platformByLabel(view.Options, label)
		if !ok || p == m.selected {
			return
		}
		m.render(p)
	}
	m.selector = sel
	return sel
}

func (m *Manager) buildPanel(panel guide.Panel) fyne.CanvasObject {
	cards := container.NewVBox()
	for i, step := range panel.Steps {
		items := container.NewVBox()
		if step.Description != "" {
			description := widget.NewLabel(step.Description)
			description.Wrapping = fyne.TextWrapWord
			items.Add(description)
		}
		if len(step.Buttons) > 0 {
			buttons := container.NewHBox()
			for _, b := range step.Buttons {
				buttons.Add(m.buildButton(b))
			}
			items.Add(buttons)
		}
		cards.Add(widget.NewCard(fmt.Sprintf("%d. %s", i+1, step.Title), "", items))
	}
	return container.NewVScroll(cards)
}

func (m *Manager) buildButton(b guide.Button) *widget.Button {
	link := b.URL
	btn := widget.NewButton(b.Text, func() { m.open(link) })
	if b.Kind == guide.ButtonDeepLink || b.Recommended {
		btn.Importance = widget.HighImportance
	}
	return btn
}

// open передаёт ссылку ОС. В лог попадает только схема: ссылка содержит адрес подписки.
func (m *Manager) open(link string) {
	scheme := linkScheme(link)
	if err := deeplink.Open(m.opener, link); err != nil {
		if m.logger != nil {
			m.logger.Errorf("open %s link: %v", scheme, err)
		}
		if m.win != nil {
			dialog.ShowError(err, m.win)
		}
		return
	}
	if m.logger != nil {
		m.logger.Debugf("opened %s link", scheme)
	}
}

func linkScheme(link string) string {
	if i := strings.Index(link, ":"); i > 0 {
		return link[:i]
	}
	return "unknown"
}

func (m *Manager) callOnUI(fn func(), wait bool) {
	if m.app == nil || fn == nil {
		return
	}
	if drv := m.app.Driver(); drv != nil {
		drv.DoFromGoroutine(fn, wait)
		return
	}
	fn()
}

func platformByLabel(options []guide.Option, label string) (platform.Platform, bool) {
	for _, option := range options {
		if option.Label == label {
			return option.Platform, true
		}
	}
	return "", false
}
