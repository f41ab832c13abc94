package persistence

import (
	"context"
	"errors"
	"fmt"

	"joy/common/database"
	"joy/common/log"
	"joy/core/domain/entity"
	"joy/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const diceHistoryCollection = "dice_history"

type diceHistoryDoc struct {
	Session string            `bson:"_id"`
	Rolls   []entity.DiceRoll `bson:"rolls"`
}

// DiceHistoryRepository 每个会话一个文档，$push 配合 $slice 保留最近 cap 条
type DiceHistoryRepository struct {
	mongo    *database.MongoManager
	capacity int
}

func NewDiceHistoryRepository(mongo *database.MongoManager, capacity int) repository.DiceHistoryRepository {
	return &DiceHistoryRepository{mongo: mongo, capacity: capacity}
}

func (r *DiceHistoryRepository) Append(ctx context.Context, session string, roll entity.DiceRoll) error {
	if session == "" {
		return repository.ErrEmptySession
	}
	collection := r.mongo.Db.Collection(diceHistoryCollection)

	push := bson.M{"$each": bson.A{roll}}
	if r.capacity > 0 {
		push["$slice"] = -r.capacity
	}
	update := bson.M{"$push": bson.M{"rolls": push}}
	_, err := collection.UpdateOne(ctx, bson.M{"_id": session}, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Error("保存掷骰记录失败: %v", err)
		return fmt.Errorf("保存掷骰记录失败: %w", err)
	}
	return nil
}

func (r *DiceHistoryRepository) List(ctx context.Context, session string) ([]entity.DiceRoll, error) {
	if session == "" {
		return nil, repository.ErrEmptySession
	}
	collection := r.mongo.Db.Collection(diceHistoryCollection)

	var doc diceHistoryDoc
	err := collection.FindOne(ctx, bson.M{"_id": session}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []entity.DiceRoll{}, nil
	}
	if err != nil {
		log.Error("查询掷骰记录失败: %v", err)
		return nil, err
	}
	if doc.Rolls == nil {
		doc.Rolls = []entity.DiceRoll{}
	}
	return doc.Rolls, nil
}
