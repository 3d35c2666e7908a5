package skinstudio

// AddControl appends a control. For a thumbstick with an Image the artwork
// is attached asynchronously; wait on the Attachment before relying on it.
func (c *Client) AddControl(spec ControlSpec) (ControlItem, *Attachment, error) {
	return c.controls.Add(spec)
}

// UpdateControl replaces the control with the given id in place.
func (c *Client) UpdateControl(id string, spec ControlSpec) (ControlItem, *Attachment, error) {
	return c.controls.Update(id, spec)
}

// UpdateControlByType replaces the first control of type prevType.
func (c *Client) UpdateControlByType(prevType string, spec ControlSpec) (ControlItem, *Attachment, error) {
	return c.controls.UpdateByType(prevType, spec)
}

// DeleteControl removes the control with the given id.
func (c *Client) DeleteControl(id string) error {
	return c.controls.Delete(id)
}

// DeleteControlByType removes the first control of type typ.
func (c *Client) DeleteControlByType(typ string) error {
	return c.controls.DeleteByType(typ)
}

// MoveControl places the control's outer box at outer.
func (c *Client) MoveControl(id string, outer Point) (ControlItem, error) {
	return c.controls.Move(id, outer)
}

// MoveControlByType moves the first control of type typ.
func (c *Client) MoveControlByType(typ string, outer Point) (ControlItem, error) {
	return c.controls.MoveByType(typ, outer)
}

// Control returns the control with the given id.
func (c *Client) Control(id string) (ControlItem, error) {
	return c.controls.Get(id)
}

// Controls returns the controls in render order.
func (c *Client) Controls() ([]ControlItem, error) {
	return c.controls.List()
}

// ControlAt returns the topmost control whose outer box contains p.
func (c *Client) ControlAt(p Point) (ControlItem, error) {
	return c.controls.HitTest(p)
}

// OuterBox returns a control's hit area.
func (c *Client) OuterBox(id string) (Rect, error) {
	return c.controls.OuterBox(id)
}
