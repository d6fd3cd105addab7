package repoargs

type RepositoryName string

const (
	UserRepoName        RepositoryName = "user"
	SchemeRepoName      RepositoryName = "scheme"
	MembershipRepoName  RepositoryName = "membership"
	TransactionRepoName RepositoryName = "transaction"
)

// BatchExecQueryRow колбек результата i-го запроса батча без возвращаемых строк.
type BatchExecQueryRow func(i int, err error)
