package gcp

import (
	"context"
	"encoding/json"
	"fmt"

	executions "cloud.google.com/go/workflows/executions/apiv1"
	"cloud.google.com/go/workflows/executions/apiv1/executionspb"

	"github.com/Lllllllleong/identityverification/internal/models"
)

// WorkflowDispatcher starts one workflow execution per verification request.
// The workflow calls the document-verifier function and owns retries.
type WorkflowDispatcher struct {
	client   *executions.Client
	workflow string
}

func NewWorkflowDispatcher(client *executions.Client, projectID, location, workflowID string) *WorkflowDispatcher {
	return &WorkflowDispatcher{
		client:   client,
		workflow: fmt.Sprintf("projects/%s/locations/%s/workflows/%s", projectID, location, workflowID),
	}
}

// DispatchVerification returns the execution name it created.
func (d *WorkflowDispatcher) DispatchVerification(ctx context.Context, documentID string) (string, error) {
	payload, err := json.Marshal(models.VerifyDocumentRequest{DocumentID: documentID})
	if err != nil {
		return "", fmt.Errorf("failed to marshal workflow payload: %w", err)
	}
	exec, err := d.client.CreateExecution(ctx, &executionspb.CreateExecutionRequest{
		Parent: d.workflow,
		Execution: &executionspb.Execution{
			Argument: string(payload),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to trigger workflow execution: %w", err)
	}
	return exec.GetName(), nil
}
