// Command waqfrag-import loads a JSON corpus dump into the document store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/awqaf-cloud/waqfrag/internal/config"
	dbRedis "github.com/awqaf-cloud/waqfrag/internal/db/redis"
	"github.com/awqaf-cloud/waqfrag/internal/domain"
	logpkg "github.com/awqaf-cloud/waqfrag/internal/logger"
	corpusrepo "github.com/awqaf-cloud/waqfrag/internal/repository/corpus"
)

// corpusFile is the on-disk dump format: three optional record arrays.
type corpusFile struct {
	Knowledge    []knowledgeDTO   `json:"knowledge,omitempty"`
	Cases        []caseDTO        `json:"cases,omitempty"`
	Instructions []instructionDTO `json:"instructions,omitempty"`
}

type knowledgeDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Source    string `json:"source,omitempty"`
	Tags      string `json:"tags,omitempty"`
	Embedding string `json:"embedding,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

type caseDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CaseNumber  string `json:"case_number"`
	CaseType    string `json:"case_type"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type instructionDTO struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Content           string `json:"content"`
	InstructionNumber string `json:"instruction_number"`
	Type              string `json:"type"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

func main() {
	var (
		file    = flag.String("file", "", "path to the JSON corpus dump (required)")
		replace = flag.Bool("replace", false, "purge existing corpus records before importing")
	)
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if *file == "" {
		logger.Fatal("Missing required -file flag")
	}

	data, err := os.ReadFile(filepath.Clean(*file))
	if err != nil {
		logger.Fatal("Failed to read corpus file", zap.Error(err))
	}
	var dump corpusFile
	if err := json.Unmarshal(data, &dump); err != nil {
		logger.Fatal("Failed to parse corpus file", zap.Error(err))
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	repo := corpusrepo.New(store)

	if *replace {
		purged, err := repo.Purge(ctx)
		if err != nil {
			logger.Fatal("Failed to purge corpus", zap.Error(err))
		}
		logger.Info("Purged existing corpus", zap.Int("records", purged))
	}

	if len(dump.Knowledge) > 0 {
		if err := repo.ImportKnowledge(ctx, knowledgeFromDTO(dump.Knowledge)); err != nil {
			logger.Fatal("Failed to import knowledge documents", zap.Error(err))
		}
	}
	if len(dump.Cases) > 0 {
		if err := repo.ImportCases(ctx, casesFromDTO(dump.Cases)); err != nil {
			logger.Fatal("Failed to import case records", zap.Error(err))
		}
	}
	if len(dump.Instructions) > 0 {
		if err := repo.ImportInstructions(ctx, instructionsFromDTO(dump.Instructions)); err != nil {
			logger.Fatal("Failed to import instruction records", zap.Error(err))
		}
	}

	logger.Info("Corpus import finished",
		zap.String("file", *file),
		zap.Int("knowledge", len(dump.Knowledge)),
		zap.Int("cases", len(dump.Cases)),
		zap.Int("instructions", len(dump.Instructions)),
	)
}

// activeOrDefault treats a missing is_active field as active.
func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func knowledgeFromDTO(dtos []knowledgeDTO) []domain.KnowledgeDocument {
	docs := make([]domain.KnowledgeDocument, len(dtos))
	for i, d := range dtos {
		docs[i] = domain.KnowledgeDocument{
			ID:        d.ID,
			Title:     d.Title,
			Content:   d.Content,
			Category:  domain.Category(d.Category),
			Source:    d.Source,
			Tags:      d.Tags,
			Embedding: d.Embedding,
			IsActive:  activeOrDefault(d.IsActive),
		}
	}
	return docs
}

func casesFromDTO(dtos []caseDTO) []domain.CaseRecord {
	cases := make([]domain.CaseRecord, len(dtos))
	for i, d := range dtos {
		cases[i] = domain.CaseRecord{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			CaseNumber:  d.CaseNumber,
			CaseType:    domain.CaseType(d.CaseType),
			IsActive:    activeOrDefault(d.IsActive),
		}
	}
	return cases
}

func instructionsFromDTO(dtos []instructionDTO) []domain.InstructionRecord {
	instructions := make([]domain.InstructionRecord, len(dtos))
	for i, d := range dtos {
		instructions[i] = domain.InstructionRecord{
			ID:                d.ID,
			Title:             d.Title,
			Content:           d.Content,
			InstructionNumber: d.InstructionNumber,
			Type:              domain.InstructionType(d.Type),
			IsActive:          activeOrDefault(d.IsActive),
		}
	}
	return instructions
}
