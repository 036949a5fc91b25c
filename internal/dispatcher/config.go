package dispatcher

// Options holds the editor options the dispatcher reads.
type Options struct {
	// TabStop is the display width of a tab.
	TabStop int

	// ShiftWidth is the indent added or removed by > and <.
	ShiftWidth int

	// ExpandTab inserts spaces for Tab and indentation.
	ExpandTab bool

	// UndoLevels bounds the undo history.
	UndoLevels int

	// JumpListSize and ChangeListSize bound the position histories.
	JumpListSize   int
	ChangeListSize int

	// MaxMacroDepth bounds nested macro playback.
	MaxMacroDepth int

	// ScrollOff is the minimum number of lines kept above and below the
	// cursor.
	ScrollOff int

	// TextWidth is the line width gq formats to.
	TextWidth int

	// WrapScan lets searches wrap around the end of the buffer.
	WrapScan bool
}

// DefaultOptions returns options with Vim's defaults.
func DefaultOptions() Options {
	return Options{
		TabStop:        8,
		ShiftWidth:     8,
		ExpandTab:      false,
		UndoLevels:     1000,
		JumpListSize:   100,
		ChangeListSize: 100,
		MaxMacroDepth:  100,
		ScrollOff:      0,
		TextWidth:      79,
		WrapScan:       true,
	}
}

// WithTabStop returns a copy of the options with tab stop and shift width
// set.
func (o Options) WithTabStop(tabStop, shiftWidth int) Options {
	o.TabStop = tabStop
	o.ShiftWidth = shiftWidth
	return o
}

// WithExpandTab returns a copy of the options with expandtab set.
func (o Options) WithExpandTab(expand bool) Options {
	o.ExpandTab = expand
	return o
}

// WithTextWidth returns a copy of the options with the format width set.
func (o Options) WithTextWidth(width int) Options {
	o.TextWidth = width
	return o
}

// normalized replaces unusable values with defaults.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.TabStop <= 0 {
		o.TabStop = def.TabStop
	}
	if o.ShiftWidth <= 0 {
		o.ShiftWidth = o.TabStop
	}
	if o.UndoLevels <= 0 {
		o.UndoLevels = def.UndoLevels
	}
	if o.JumpListSize <= 0 {
		o.JumpListSize = def.JumpListSize
	}
	if o.ChangeListSize <= 0 {
		o.ChangeListSize = def.ChangeListSize
	}
	if o.MaxMacroDepth <= 0 {
		o.MaxMacroDepth = def.MaxMacroDepth
	}
	if o.TextWidth <= 0 {
		o.TextWidth = def.TextWidth
	}
	if o.ScrollOff < 0 {
		o.ScrollOff = 0
	}
	return o
}
