package lib

type tokenReader interface {
	Next() (tok Token, done bool)
	Peek() (tok Token, done bool)
}
