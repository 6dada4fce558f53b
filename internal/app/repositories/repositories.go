package repositories

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
}

// NewRepositories initializes all repositories over one pool
func NewRepositories(db Querier) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
	}
}
