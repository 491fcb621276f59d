package storage

// Disabled is a Backend for a medium that cannot be used, such as storage
// turned off by the user. Every call fails with ErrUnavailable.
type Disabled struct{}

func (Disabled) GetItem(string) (string, bool, error) { return "", false, ErrUnavailable }
func (Disabled) SetItem(string, string) error         { return ErrUnavailable }
func (Disabled) RemoveItem(string) error              { return ErrUnavailable }
func (Disabled) Keys() ([]string, error)              { return nil, ErrUnavailable }
func (Disabled) Len() (int, error)                    { return 0, ErrUnavailable }
