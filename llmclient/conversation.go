package llmclient

// Conversation holds the ordered turn history and the pending file
// queue a client sends from. Each vendor client owns exactly one; it
// is not safe for concurrent use.
type Conversation struct {
	turns []Turn
	files []FileReference
}

// AddPrompt appends a turn. A system turn has replace-or-insert
// semantics: if a system turn already sits at index 0 its text is
// replaced in place, otherwise the turn is inserted at the front.
// Turns with an unknown role are silently ignored.
func (c *Conversation) AddPrompt(turn Turn) {
	switch turn.Role {
	case RoleSystem:
		if len(c.turns) > 0 && c.turns[0].Role == RoleSystem {
			c.turns[0].Text = turn.Text
			return
		}
		c.turns = append([]Turn{turn}, c.turns...)
	case RoleUser, RoleModel:
		c.turns = append(c.turns, turn)
	}
}

// ResetPrompts clears all stored turns.
func (c *Conversation) ResetPrompts() {
	c.turns = nil
}

// SetSystemPrompt sets the system turn via AddPrompt.
func (c *Conversation) SetSystemPrompt(text []string) {
	c.AddPrompt(Turn{Role: RoleSystem, Text: text})
}

// SetUserPrompt appends a user turn.
func (c *Conversation) SetUserPrompt(text []string) {
	c.AddPrompt(Turn{Role: RoleUser, Text: text})
}

// SetModelPrompt appends a model turn.
func (c *Conversation) SetModelPrompt(text []string) {
	c.AddPrompt(Turn{Role: RoleModel, Text: text})
}

// AddFile queues a file reference for the next payload build.
func (c *Conversation) AddFile(ref FileReference) {
	c.files = append(c.files, ref)
}

// Turns returns the stored turn history.
func (c *Conversation) Turns() []Turn {
	return c.turns
}

// PendingFiles returns how many file references are still queued.
func (c *Conversation) PendingFiles() int {
	return len(c.files)
}

// nextFile pops the front of the file queue.
func (c *Conversation) nextFile() (FileReference, bool) {
	if len(c.files) == 0 {
		return FileReference{}, false
	}
	ref := c.files[0]
	c.files = c.files[1:]
	return ref, true
}
