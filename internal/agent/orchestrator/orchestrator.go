package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github-agent/internal/session"
	"github-agent/pkg/llmprovider"
	pkgLog "github-agent/pkg/log"
)

// Run runs the ReAct loop: Reason → Act → Observe. Every tool call goes
// through sc, so the actions it triggers land in the session trail.
func (o *Orchestrator) Run(ctx context.Context, sc *session.Context, query string) (string, error) {
	ctx = pkgLog.WithCaller(ctx, sc.Identity.Login, sc.SessionID)

	system := llmprovider.TextMessage(llmprovider.RoleSystem,
		SystemPromptAgent+buildTimeContext(o.now(), sc.Timestamp, sc.Identity.Login))
	req := &llmprovider.Request{
		SystemInstruction: &system,
		Messages:          []llmprovider.Message{llmprovider.TextMessage(llmprovider.RoleUser, query)},
		Tools:             o.registry.ToFunctionDefinitions(),
	}

	for step := 0; step < o.maxSteps; step++ {
		o.l.Debugf(ctx, "%s: "+LogMsgAgentStep, LogPrefixRun, step+1, o.maxSteps)

		// 1. Reason: Ask LLM what to do
		resp, err := o.llm.GenerateContent(ctx, req)
		if err != nil {
			return "", fmt.Errorf(ErrMsgAgentLLMError+": %w", step+1, err)
		}

		// 2. No tool call means the LLM has its final answer
		calls := resp.Content.FunctionCalls()
		if len(calls) == 0 {
			answer := resp.Content.Text()
			if answer == "" {
				return "", errors.New(ErrMsgEmptyLLMResponse)
			}
			o.l.Infof(ctx, "%s: "+LogMsgAgentFinished, LogPrefixRun, step+1)
			return answer, nil
		}

		req.Messages = append(req.Messages, llmprovider.Message{
			Role:  llmprovider.RoleAssistant,
			Parts: resp.Content.Parts,
		})

		// 3. Act, 4. Observe
		for _, call := range calls {
			req.Messages = append(req.Messages, llmprovider.ToolResult(call, o.execute(ctx, sc, call)))
		}
	}

	o.l.Warnf(ctx, "%s: "+LogMsgAgentMaxSteps, LogPrefixRun, o.maxSteps)
	return ErrMsgMaxStepsExceeded, nil
}

func (o *Orchestrator) execute(ctx context.Context, sc *session.Context, call *llmprovider.FunctionCall) any {
	o.l.Infof(ctx, "%s: "+LogMsgAgentCallingTool, LogPrefixRun, call.Name)

	tool, ok := o.registry.Get(call.Name)
	if !ok {
		o.l.Errorf(ctx, "%s: %s %s", LogPrefixRun, ErrMsgToolNotFound, call.Name)
		return map[string]string{"error": ErrMsgToolNotFound}
	}

	res, err := tool.Execute(ctx, sc, call.Args)
	if err != nil {
		o.l.Errorf(ctx, "%s: "+LogMsgToolExecutionError, LogPrefixRun, call.Name, err)
		return map[string]string{"error": err.Error()}
	}
	return res
}
