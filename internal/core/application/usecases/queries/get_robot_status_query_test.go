package queries_test

import (
	"testing"

	"butler/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/require"
)

func TestNewGetRobotStatusQuery(t *testing.T) {
	require.NoError(t, queries.NewGetRobotStatusQuery().Validate())
}

func TestGetRobotStatusQuery_ZeroValueIsInvalid(t *testing.T) {
	var q queries.GetRobotStatusQuery

	require.ErrorIs(t, q.Validate(), queries.ErrGetRobotStatusQueryIsNotConstructed)
}
