package role

type Role int

const (
	Guest    Role = iota // 0
	Designer             // 1, роль по умолчанию при регистрации
	Admin                // 2
)

func (r Role) String() string {
	switch r {
	case Designer:
		return "designer"
	case Admin:
		return "admin"
	default:
		return "guest"
	}
}
