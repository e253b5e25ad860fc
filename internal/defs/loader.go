// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"

	"glyph-defense/pkg/logger"
)

func init() {
	ResetDefaults()
}

// ResetDefaults перезаполняет все библиотеки встроенными таблицами.
// Тесты зовут её, чтобы откатить свои правки каталогов.
func ResetDefaults() {
	TowerDefs = make(map[string]TowerDefinition, len(defaultTowerDefs))
	for _, def := range defaultTowerDefs {
		TowerDefs[def.ID] = def
	}
	EnemyDefs = make(map[string]EnemyDefinition, len(defaultEnemyDefs))
	for _, def := range defaultEnemyDefs {
		EnemyDefs[def.ID] = def
	}
	Waves = make([]WaveDefinition, len(defaultWaves))
	copy(Waves, defaultWaves)
	StageDefs = make(map[string]StageDefinition, len(defaultStageDefs))
	for _, def := range defaultStageDefs {
		StageDefs[def.ID] = def
	}
}

// LoadTowerDefinitions reads a tower catalog file and replaces the
// matching entries of TowerDefs.
func LoadTowerDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tower definitions file: %w", err)
	}
	var towerDefs []TowerDefinition
	if err := json.Unmarshal(file, &towerDefs); err != nil {
		return fmt.Errorf("failed to unmarshal tower definitions: %w", err)
	}
	for _, def := range towerDefs {
		TowerDefs[def.ID] = def
	}
	logger.Log.WithField("count", len(towerDefs)).Info("loaded tower definitions")
	return nil
}

// LoadEnemyDefinitions reads an enemy catalog file and replaces the
// matching entries of EnemyDefs.
func LoadEnemyDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read enemy definitions file: %w", err)
	}
	var enemyDefs []EnemyDefinition
	if err := json.Unmarshal(file, &enemyDefs); err != nil {
		return fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}
	for _, def := range enemyDefs {
		EnemyDefs[def.ID] = def
	}
	logger.Log.WithField("count", len(enemyDefs)).Info("loaded enemy definitions")
	return nil
}

// LoadWaveDefinitions reads a wave list file and replaces Waves entirely.
func LoadWaveDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read wave definitions file: %w", err)
	}
	var waves []WaveDefinition
	if err := json.Unmarshal(file, &waves); err != nil {
		return fmt.Errorf("failed to unmarshal wave definitions: %w", err)
	}
	if len(waves) == 0 {
		return fmt.Errorf("wave definitions file %s is empty", path)
	}
	Waves = waves
	logger.Log.WithField("count", len(waves)).Info("loaded wave definitions")
	return nil
}

// LoadStageDefinitions reads a stage file and replaces the matching
// entries of StageDefs.
func LoadStageDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read stage definitions file: %w", err)
	}
	var stages []StageDefinition
	if err := json.Unmarshal(file, &stages); err != nil {
		return fmt.Errorf("failed to unmarshal stage definitions: %w", err)
	}
	for _, def := range stages {
		StageDefs[def.ID] = def
	}
	logger.Log.WithField("count", len(stages)).Info("loaded stage definitions")
	return nil
}
