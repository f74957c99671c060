package dummydb

import (
	"sync"

	"github.com/trezcool/meritum/core/auth"
	"github.com/trezcool/meritum/core/event"
	"github.com/trezcool/meritum/core/level"
	"github.com/trezcool/meritum/core/merit"
	"github.com/trezcool/meritum/core/organizer"
	"github.com/trezcool/meritum/core/student"
)

type (
	DB struct {
		admin     *adminTable
		student   *studentTable
		organizer *organizerTable
		event     *eventTable
		merit     *meritTable
		level     *levelTable
		counter   *counterTable
	}

	adminTable struct {
		sync.RWMutex
		table map[string]*auth.Admin // key: sanitized email
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student // key: matric
	}

	organizerTable struct {
		sync.RWMutex
		table map[int]*organizer.Organizer
		subs  map[int]map[string]*organizer.SubOrganizer // organizerID -> subID
	}

	eventTable struct {
		sync.RWMutex
		table map[int]*event.Event
	}

	meritTable struct {
		sync.RWMutex
		table  map[string]map[string]*merit.Merit // matric -> meritID
		values merit.Values
	}

	levelTable struct {
		sync.RWMutex
		table map[string]*level.Level
	}

	counterTable struct {
		sync.Mutex
		table map[string]int
	}
)

func Open() (*DB, error) {
	db := &DB{
		admin:     &adminTable{table: make(map[string]*auth.Admin)},
		student:   &studentTable{table: make(map[string]*student.Student)},
		organizer: &organizerTable{table: make(map[int]*organizer.Organizer), subs: make(map[int]map[string]*organizer.SubOrganizer)},
		event:     &eventTable{table: make(map[int]*event.Event)},
		merit: &meritTable{
			table: make(map[string]map[string]*merit.Merit),
			values: merit.Values{
				Levels:       make(map[string]map[string]int),
				Achievements: make(map[string]map[string]int),
			},
		},
		level:   &levelTable{table: make(map[string]*level.Level)},
		counter: &counterTable{table: make(map[string]int)},
	}
	return db, nil
}
