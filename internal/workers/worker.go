package workers

// Worker фоновая задача, которую запускает Manager.
type Worker interface {
	Start() error
	Stop()
	Name() string
}
