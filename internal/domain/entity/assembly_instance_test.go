package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del tablero Kanban
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_FlujoCompleto(t *testing.T) {
	// Avance de a un paso por el flujo completo.
	steps := []struct {
		from entity.Status
		to   entity.Status
	}{
		{entity.StatusBacklog, entity.StatusTodo},
		{entity.StatusTodo, entity.StatusInProgress},
		{entity.StatusInProgress, entity.StatusToVerify},
		{entity.StatusToVerify, entity.StatusDone},
	}
	for _, s := range steps {
		assert.True(t, s.from.CanTransition(s.to),
			"debe permitirse %s -> %s", s.from, s.to)
	}
}

func TestCanTransition_SaltosProhibidos(t *testing.T) {
	cases := []struct {
		name string
		from entity.Status
		to   entity.Status
	}{
		{"saltar un estado", entity.StatusBacklog, entity.StatusInProgress},
		{"saltar directo a DONE", entity.StatusBacklog, entity.StatusDone},
		{"retroceder", entity.StatusInProgress, entity.StatusTodo},
		{"quedarse en el mismo estado", entity.StatusTodo, entity.StatusTodo},
		{"TO_VERIFY directo desde TODO", entity.StatusTodo, entity.StatusToVerify},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.from.CanTransition(tc.to),
				"no debe permitirse %s -> %s", tc.from, tc.to)
		})
	}
}

func TestCanTransition_CanceladoDesdeNoTerminales(t *testing.T) {
	for _, from := range []entity.Status{
		entity.StatusBacklog, entity.StatusTodo, entity.StatusInProgress, entity.StatusToVerify,
	} {
		assert.True(t, from.CanTransition(entity.StatusCancelado),
			"CANCELADO debe ser alcanzable desde %s", from)
	}
}

func TestCanTransition_EstadosTerminalesNoSalen(t *testing.T) {
	for _, terminal := range []entity.Status{entity.StatusDone, entity.StatusCancelado} {
		assert.True(t, terminal.IsTerminal())
		for _, to := range []entity.Status{
			entity.StatusBacklog, entity.StatusTodo, entity.StatusInProgress,
			entity.StatusToVerify, entity.StatusDone, entity.StatusCancelado,
		} {
			assert.False(t, terminal.CanTransition(to),
				"%s es terminal, no debe transicionar a %s", terminal, to)
		}
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, entity.ValidStatus(entity.StatusBacklog))
	assert.True(t, entity.ValidStatus(entity.StatusCancelado))
	assert.False(t, entity.ValidStatus(entity.Status("PAUSADO")))
	assert.False(t, entity.ValidStatus(entity.Status("")))
}

func TestStampStatus_EstampaTimestampPorEstado(t *testing.T) {
	a := &entity.AssemblyInstance{}
	now := time.Now()

	a.StampStatus(entity.StatusTodo, now)
	assert.NotNil(t, a.TodoAt)
	assert.Nil(t, a.InProgressAt)

	a.StampStatus(entity.StatusDone, now)
	assert.NotNil(t, a.DoneAt)
	assert.Equal(t, now, *a.DoneAt)
}
