// Package projection builds read models from the message store.
// Handles thread assembly, unread filtering and identity resolution.
// Does not write to the store or interact with UI directly.
package projection

import (
	"chat-thread/domain"
	"chat-thread/repositories"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// ThreadNode is one message of a conversation tree with its direct replies, oldest first.
type ThreadNode struct {
	Message domain.MessageView
	Replies []*ThreadNode
}

// Flatten lists the node and its descendants depth-first, parents before replies.
func (n *ThreadNode) Flatten() []domain.MessageView {
	var views []domain.MessageView
	stack := []*ThreadNode{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		views = append(views, node.Message)
		// Push in reverse so the oldest reply is visited first
		for i := len(node.Replies) - 1; i >= 0; i-- {
			stack = append(stack, node.Replies[i])
		}
	}
	return views
}

// Size counts the node and all its descendants.
func (n *ThreadNode) Size() int {
	return len(n.Flatten())
}

// ThreadMaterializer assembles reply trees with a bounded number of storage reads:
// one point read for the requested message, one prefix scan decoding its whole thread
// and one iterator resolving the users, whatever the number of nodes.
type ThreadMaterializer struct {
	messages repositories.IMessageRepository
	users    repositories.IUserRepository
	log      *slog.Logger
}

func NewThreadMaterializer(
	messages repositories.IMessageRepository,
	users repositories.IUserRepository,
	log *slog.Logger,
) ThreadMaterializer {
	return ThreadMaterializer{messages: messages, users: users, log: log}
}

// Materialize returns the tree rooted at messageID. When messageID is a reply,
// only its own subtree is returned.
func (t ThreadMaterializer) Materialize(txn *badger.Txn, messageID uuid.UUID) (*ThreadNode, error) {
	start, err := t.messages.Get(txn, messageID)
	if err != nil {
		return nil, err
	}
	thread, err := t.messages.ListThread(txn, start.ThreadID)
	if err != nil {
		return nil, err
	}
	views, err := ResolveViews(txn, t.users, thread)
	if err != nil {
		return nil, err
	}
	return t.assemble(start.ID, views), nil
}

// assemble links the loaded views below the start node without further reads.
func (t ThreadMaterializer) assemble(startID uuid.UUID, views []domain.MessageView) *ThreadNode {
	nodes := make(map[uuid.UUID]*ThreadNode, len(views))
	for _, view := range views {
		nodes[view.ID] = &ThreadNode{Message: view}
	}
	children := make(map[uuid.UUID][]*ThreadNode, len(views))
	for _, view := range views {
		if view.IsRoot() {
			continue
		}
		children[view.ParentID] = append(children[view.ParentID], nodes[view.ID])
	}

	root := nodes[startID]
	if root == nil {
		return nil
	}
	visited := map[uuid.UUID]struct{}{startID: {}}
	queue := []*ThreadNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		replies := children[node.Message.ID]
		sortNodes(replies)
		for _, reply := range replies {
			if _, seen := visited[reply.Message.ID]; seen {
				t.log.Warn("Thread contains a cycle, reply skipped",
					"thread", node.Message.ThreadID, "message", reply.Message.ID)
				continue
			}
			visited[reply.Message.ID] = struct{}{}
			node.Replies = append(node.Replies, reply)
			queue = append(queue, reply)
		}
	}
	return root
}

// CollectReplies walks already-loaded messages and returns every descendant of startID,
// depth-first, parents before replies, without the start message itself.
// A node is never visited twice, so corrupted parent links cannot make it loop.
func CollectReplies(messages []domain.Message, startID uuid.UUID) []domain.Message {
	children := make(map[uuid.UUID][]domain.Message)
	for _, m := range messages {
		if m.IsRoot() {
			continue
		}
		children[m.ParentID] = append(children[m.ParentID], m)
	}
	for parentID := range children {
		sortMessages(children[parentID])
	}

	var replies []domain.Message
	visited := map[uuid.UUID]struct{}{startID: {}}
	var collect func(id uuid.UUID)
	collect = func(id uuid.UUID) {
		for _, reply := range children[id] {
			if _, seen := visited[reply.ID]; seen {
				continue
			}
			visited[reply.ID] = struct{}{}
			replies = append(replies, reply)
			collect(reply.ID)
		}
	}
	collect(startID)
	return replies
}

func sortMessages(messages []domain.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return before(messages[i], messages[j])
	})
}

func sortNodes(nodes []*ThreadNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return before(nodes[i].Message.Message, nodes[j].Message.Message)
	})
}

// before orders by creation time, then by ID, the same order as the store indexes.
func before(a, b domain.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}
