package mocks

//go:generate mockgen -destination=book_repository.go -package=mocks -mock_names=Repository=MockBookRepository libraryapi/internal/book Repository
//go:generate mockgen -destination=patron_repository.go -package=mocks -mock_names=Repository=MockPatronRepository libraryapi/internal/patron Repository
//go:generate mockgen -destination=loan_store.go -package=mocks -mock_names=Store=MockLoanStore,Tx=MockLoanTx libraryapi/internal/loan Store,Tx
